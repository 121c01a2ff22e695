package cron

import (
	"context"
	"log"
	"time"

	"remindify/config"
	"remindify/services/dispatch"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeDispatchReminders = "dispatch:pending-reminders"

// InitDispatchWorker runs the periodic dispatch worker in background: a
// scheduler enqueues the dispatch task on the configured cadence and the
// worker executes it. The HTTP trigger and this worker share the same
// engine; the reminder ledger keeps overlapping runs from double-sending.
func InitDispatchWorker(dispatchSvc dispatch.DispatchService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			// The dispatch pass must not run against itself in-process.
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDispatchReminders, handleDispatchTask(dispatchSvc))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register(config.AppConfig.CronSchedule, asynq.NewTask(TypeDispatchReminders, nil)); err != nil {
		log.Fatalf("[DispatchWorker] failed to register schedule %q: %v", config.AppConfig.CronSchedule, err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		log.Println("[DispatchWorker] starting scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[DispatchWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[DispatchWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DispatchWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DispatchWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDispatchTask(dispatchSvc dispatch.DispatchService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		report, err := dispatchSvc.Run(ctx)
		if err != nil {
			log.Printf("[DispatchWorker] dispatch run failed: %v", err)
			return err
		}
		log.Printf("[DispatchWorker] dispatch run complete, %d notification(s) sent", report.NotificationsSent())
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DispatchWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
