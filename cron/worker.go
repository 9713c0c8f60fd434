package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"inkwell/config"
	devicetokenRepo "inkwell/database/repository/devicetoken"
	"inkwell/models"
	"inkwell/services/notification"
	"inkwell/services/ranking"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeDigestBuild = "digest:build"
	TypeDigestSend  = "digest:send"
)

// InitDigestWorker runs the trending digest scheduler and worker in background.
// The build task fires on the configured cron spec, reads the quote ranking and
// fans one send task out per member with an active device.
func InitDigestWorker(
	notifSvc notification.NotificationService,
	rankingStore ranking.RankingStore,
	tokens devicetokenRepo.DeviceTokenRepository,
) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDigestQueueDB,
	}

	client := asynq.NewClient(redisOpts)

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDigestBuild, handleDigestBuild(client, rankingStore, tokens))
	mux.HandleFunc(TypeDigestSend, handleDigestSend(notifSvc))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(config.AppConfig.DigestCronSpec, asynq.NewTask(TypeDigestBuild, nil)); err != nil {
		log.Fatalf("[DigestWorker] ❗ Failed to register digest schedule: %v", err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[DigestWorker] 🚀 Starting digest scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Printf("[DigestWorker] ❌ Scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[DigestWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DigestWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DigestWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleDigestBuild reads the current top quotes and enqueues one send task
// per member that has an active device registration.
func handleDigestBuild(
	client *asynq.Client,
	rankingStore ranking.RankingStore,
	tokens devicetokenRepo.DeviceTokenRepository,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		top, err := rankingStore.TopN(ctx, ranking.CategoryQuotes, int64(config.AppConfig.DigestTopN))
		if err != nil {
			log.Printf("[DigestBuild] ❌ Failed to read ranking: %v", err)
			return err
		}
		if len(top) == 0 {
			log.Println("[DigestBuild] Nothing trending today, skipping digest")
			return nil
		}

		title := "Today's trending quotes 📚"
		body := digestBody(top)

		members, err := tokens.DistinctActiveMembers()
		if err != nil {
			log.Printf("[DigestBuild] ❌ Failed to list digest recipients: %v", err)
			return err
		}

		for _, memberID := range members {
			payload, err := json.Marshal(models.DigestPayload{
				MemberID: memberID,
				Title:    title,
				Body:     body,
			})
			if err != nil {
				return err
			}
			if _, err := client.EnqueueContext(ctx, asynq.NewTask(TypeDigestSend, payload)); err != nil {
				log.Printf("[DigestBuild] ❌ Failed to enqueue digest for %s: %v", memberID, err)
				return err
			}
		}

		log.Printf("[DigestBuild] 📬 Enqueued digest for %d members", len(members))
		return nil
	}
}

func handleDigestSend(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.DigestPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DigestSend] 🔴 Invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"screen": "trending",
		}

		if err := notifSvc.SendMemberPush(ctx, p.MemberID, p.Title, p.Body, data); err != nil {
			log.Printf("[DigestSend] ❌ Failed to send digest to %s: %v", p.MemberID, err)
			return err
		}
		return nil
	}
}

// digestBody renders the top entry plus a count of the rest.
func digestBody(top []models.RankedContent) string {
	first := top[0].Snapshot
	if len(top) == 1 {
		return fmt.Sprintf("“%s” — %s", first.Title, first.Author)
	}
	return fmt.Sprintf("“%s” — %s, and %d more trending today", first.Title, first.Author, len(top)-1)
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDigestQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DigestWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
