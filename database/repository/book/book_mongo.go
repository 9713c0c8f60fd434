package bookRepo

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

// MongoBookRepo implements BookRepository using MongoDB.
type MongoBookRepo struct {
	coll *mongo.Collection
}

// NewMongoBookRepo creates a new instance of BookRepository using MongoDB.
func NewMongoBookRepo() BookRepository {
	coll := database.DB().Collection("books")
	repo := &MongoBookRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new book document.
func (r *MongoBookRepo) Create(book *models.Book) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	book.CreatedAt = now
	book.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// GetByID retrieves a book by its unique ID.
func (r *MongoBookRepo) GetByID(id string) (*models.Book, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var book models.Book
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&book); err != nil {
		return nil, fmt.Errorf("failed to fetch book with id %s: %w", id, err)
	}
	return &book, nil
}

// IncrementViews atomically bumps the view counter and returns the fresh document.
func (r *MongoBookRepo) IncrementViews(id string) (*models.Book, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book models.Book
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&book); err != nil {
		return nil, fmt.Errorf("failed to increment views for book %s: %w", id, err)
	}
	return &book, nil
}
