package devicetokenRepo

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

// MongoDeviceTokenRepo implements DeviceTokenRepository using MongoDB.
type MongoDeviceTokenRepo struct {
	coll *mongo.Collection
}

// NewMongoDeviceTokenRepo creates a new instance of DeviceTokenRepository using MongoDB.
func NewMongoDeviceTokenRepo() DeviceTokenRepository {
	coll := database.DB().Collection("device_tokens")
	repo := &MongoDeviceTokenRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique compound index on (memberId, deviceId).
func (r *MongoDeviceTokenRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "memberId", Value: 1}, {Key: "deviceId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "isActive", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Register upserts the registration for (member, deviceId) and reactivates it.
func (r *MongoDeviceTokenRepo) Register(token *models.DeviceToken) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"memberId": token.MemberID, "deviceId": token.DeviceID}
	update := bson.M{
		"$set": bson.M{
			"deviceToken": token.DeviceToken,
			"deviceType":  token.DeviceType,
			"isActive":    true,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to register device %s for member %s: %w", token.DeviceID, token.MemberID, err)
	}
	return nil
}

// Unregister explicitly deactivates a registration.
func (r *MongoDeviceTokenRepo) Unregister(memberID, deviceID string) error {
	return r.Deactivate(memberID, deviceID)
}

// Deactivate marks a registration inactive.
func (r *MongoDeviceTokenRepo) Deactivate(memberID, deviceID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"memberId": memberID, "deviceId": deviceID}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate device %s for member %s: %w", deviceID, memberID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("device %s for member %s not found", deviceID, memberID)
	}
	return nil
}

// FindActiveByMember returns only the member's active registrations.
func (r *MongoDeviceTokenRepo) FindActiveByMember(memberID string) ([]models.DeviceToken, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"memberId": memberID, "isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch device tokens for member %s: %w", memberID, err)
	}
	defer cursor.Close(ctx)

	var tokens []models.DeviceToken
	if err := cursor.All(ctx, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode device tokens for member %s: %w", memberID, err)
	}
	return tokens, nil
}

// DistinctActiveMembers lists member IDs that currently hold an active registration.
func (r *MongoDeviceTokenRepo) DistinctActiveMembers() ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "memberId", bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list members with active devices: %w", err)
	}

	members := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			members = append(members, id)
		}
	}
	return members, nil
}
