package quoteRepo

import (
	"context"
	"fmt"
	"time"

	"inkwell/database"
	"inkwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoQuoteRepo implements QuoteRepository using MongoDB.
type MongoQuoteRepo struct {
	coll  *mongo.Collection
	likes *mongo.Collection
}

// NewMongoQuoteRepo creates a new instance of QuoteRepository using MongoDB.
func NewMongoQuoteRepo() QuoteRepository {
	db := database.DB()
	repo := &MongoQuoteRepo{
		coll:  db.Collection("quotes"),
		likes: db.Collection("quote_likes"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoQuoteRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	quoteIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, quoteIndexes); err != nil {
		return fmt.Errorf("failed to create quote indexes: %w", err)
	}

	likeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "quoteId", Value: 1}, {Key: "memberId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.likes.Indexes().CreateMany(ctx, likeIndexes); err != nil {
		return fmt.Errorf("failed to create like indexes: %w", err)
	}
	return nil
}

// Create inserts a new quote document.
func (r *MongoQuoteRepo) Create(quote *models.Quote) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	quote.CreatedAt = now
	quote.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, quote); err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// GetByID retrieves a quote by its unique ID.
func (r *MongoQuoteRepo) GetByID(id string) (*models.Quote, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var quote models.Quote
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to fetch quote with id %s: %w", id, err)
	}
	return &quote, nil
}

// IncrementViews atomically bumps the view counter and returns the fresh document.
func (r *MongoQuoteRepo) IncrementViews(id string) (*models.Quote, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var quote models.Quote
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to increment views for quote %s: %w", id, err)
	}
	return &quote, nil
}

// AddLike records a like and bumps the quote's like counter.
func (r *MongoQuoteRepo) AddLike(like *models.Like) (*models.Quote, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	like.CreatedAt = time.Now()
	if _, err := r.likes.InsertOne(ctx, like); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyLiked
		}
		return nil, fmt.Errorf("failed to record like for quote %s: %w", like.QuoteID, err)
	}

	filter := bson.M{"id": like.QuoteID}
	update := bson.M{
		"$inc": bson.M{"likes": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var quote models.Quote
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to increment likes for quote %s: %w", like.QuoteID, err)
	}
	return &quote, nil
}
