package cron

import (
	"context"
	"log"
	"time"

	"shelfspace/config"
	"shelfspace/services/rental"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const TypeExpireStale = "rental:expire_stale"

// InitExpiryWorker runs the async worker and its periodic scheduler in the
// background. The sweep itself is idempotent, so overlapping or redelivered
// sweeps are harmless.
func InitExpiryWorker(rentalSvc rental.RentalService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeExpireStale, handleExpireTask(rentalSvc))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 15m", asynq.NewTask(TypeExpireStale, nil)); err != nil {
		log.Printf("[ExpiryWorker] failed to register sweep schedule: %v", err)
	}

	go monitorRedisConnection()

	go func() {
		log.Println("[ExpiryWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpiryWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpiryWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[ExpiryWorker] scheduler stopped: %v", err)
		}
	}()
}

func handleExpireTask(rentalSvc rental.RentalService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		count, err := rentalSvc.ExpireStale(ctx)
		if err != nil {
			log.Printf("[ExpiryWorker] ❌ Sweep failed: %v", err)
			return err
		}
		if count > 0 {
			log.Printf("[ExpiryWorker] ⏰ Expired %d stale reservations", count)
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
			log.Printf("[ExpiryWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
