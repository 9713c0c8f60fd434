// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"inkwell/config"

	"github.com/go-redis/redis/v8"
)

// RankingClient is the dedicated client for the popularity ranking store.
var RankingClient *redis.Client

// InitRanking initializes the Redis client backing the popularity ranking
// (using DB from AppConfig for ranking data).
func InitRanking() {
	RankingClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisRankingDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := RankingClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Ranking): %v", err)
	}
}

// GetRankingClient returns the ranking store client.
func GetRankingClient() *redis.Client {
	if RankingClient == nil {
		InitRanking()
	}
	return RankingClient
}
