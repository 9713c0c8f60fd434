// File: services/ranking/store.go
package ranking

import (
	"context"
	"encoding/json"
	"fmt"

	"inkwell/models"

	"github.com/go-redis/redis/v8"
)

const (
	// CategoryQuotes and CategoryBooks are the ranking categories fed by the
	// view and like workflows.
	CategoryQuotes = "quotes"
	CategoryBooks  = "books"

	rankingKeyPrefix = "ranking:"

	// baseUnit is the score added when a serialized snapshot is seen for the
	// first time.
	baseUnit = 1.0
)

// Client is the subset of redis sorted-set commands the store needs.
// *redis.Client satisfies it; tests stub it.
type Client interface {
	ZScore(ctx context.Context, key, member string) *redis.FloatCmd
	ZIncrBy(ctx context.Context, key string, increment float64, member string) *redis.FloatCmd
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
}

// RankingStore maintains an approximate popularity ranking per content
// category in an external sorted set.
type RankingStore interface {
	RecordEngagement(ctx context.Context, category string, snapshot models.PopularitySnapshot) error
	TopN(ctx context.Context, category string, n int64) ([]models.RankedContent, error)
}

// RedisRankingStore is the production implementation over a shared redis client.
type RedisRankingStore struct {
	client Client
}

// NewRedisRankingStore creates a ranking store over the given client handle.
func NewRedisRankingStore(client Client) *RedisRankingStore {
	return &RedisRankingStore{client: client}
}

func rankingKey(category string) string {
	return rankingKeyPrefix + category
}

// encodeSnapshot produces the canonical string form of a snapshot. Field order
// is fixed by the struct definition and the view count is an integer, so the
// encoding is deterministic for equal snapshots. The encoded string is also
// the sorted-set member identity: a snapshot whose view count moved since the
// last event encodes to a different string and lands in its own entry.
func encodeSnapshot(snapshot models.PopularitySnapshot) (string, error) {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return "", SerializationError{Err: err}
	}
	return string(b), nil
}

// RecordEngagement registers one engagement event for the snapshot's category.
// A never-seen serialized form is inserted at the base unit; an already-known
// form has its score incremented by the base unit scaled by the snapshot's
// view count. The existence check is a separate read, so two concurrent calls
// can both take the insert branch; the increment itself is atomic and the
// resulting drift is accepted as an approximate-ranking trade-off.
func (s *RedisRankingStore) RecordEngagement(ctx context.Context, category string, snapshot models.PopularitySnapshot) error {
	member, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	key := rankingKey(category)

	exists := true
	if _, err := s.client.ZScore(ctx, key, member).Result(); err != nil {
		if err != redis.Nil {
			return fmt.Errorf("%w: score lookup failed: %v", ErrStoreUnavailable, err)
		}
		exists = false
	}

	increment := baseUnit
	if exists {
		increment = baseUnit * float64(snapshot.Views)
	}

	if err := s.client.ZIncrBy(ctx, key, increment, member).Err(); err != nil {
		return fmt.Errorf("%w: score increment failed: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// TopN returns up to n entries for the category in descending score order.
// A category with no entries yields an empty slice, not an error. A single
// entry that fails to decode fails the whole call.
func (s *RedisRankingStore) TopN(ctx context.Context, category string, n int64) ([]models.RankedContent, error) {
	if n <= 0 {
		return []models.RankedContent{}, nil
	}

	entries, err := s.client.ZRevRangeWithScores(ctx, rankingKey(category), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: range read failed: %v", ErrStoreUnavailable, err)
	}

	ranked := make([]models.RankedContent, 0, len(entries))
	for _, entry := range entries {
		member, ok := entry.Member.(string)
		if !ok {
			return nil, DeserializationError{
				Member: fmt.Sprintf("%v", entry.Member),
				Err:    fmt.Errorf("unexpected member type %T", entry.Member),
			}
		}

		var snapshot models.PopularitySnapshot
		if err := json.Unmarshal([]byte(member), &snapshot); err != nil {
			return nil, DeserializationError{Member: member, Err: err}
		}

		ranked = append(ranked, models.RankedContent{
			Snapshot: snapshot,
			Score:    entry.Score,
		})
	}
	return ranked, nil
}
