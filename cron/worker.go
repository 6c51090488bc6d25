package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dockplan/config"
	"dockplan/models"
	"dockplan/services/scheduling"
	"dockplan/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitPurgeWorker runs the async purge worker in background.
func InitPurgeWorker(schedSvc scheduling.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

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
	mux.HandleFunc(tasks.TypeSchedulePurge, handlePurgeTask(schedSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[PurgeWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PurgeWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PurgeWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handlePurgeTask(schedSvc scheduling.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PurgePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PurgeHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[PurgeHandler] 🧹 Purging %d %s assignment(s) for user %s", len(p.IDs), p.Kind, p.UserID)

		if err := schedSvc.RetryPurge(ctx, p.UserID, p.Kind, p.IDs); err != nil {
			log.Printf("[PurgeHandler] ❌ Purge failed, will retry: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[PurgeWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
