package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"clinvetia/config"
	bookingRepo "clinvetia/database/repository/booking"
	"clinvetia/models"
	"clinvetia/services/notification"
	"clinvetia/services/tasks"

	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the async email worker in background. Each task sends
// the notification through the mail collaborator and appends the outcome to
// the booking's emailEvents log; delivery failures are recorded, not retried.
func InitEmailWorker(bookings bookingRepo.BookingRepository, mailer notification.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(bookings, mailer))

	go func() {
		log.Println("[EmailWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[EmailWorker] worker stopped: %v", err)
		}
	}()
}

func handleEmailTask(bookings bookingRepo.BookingRepository, mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailWorker] invalid payload: %v", err)
			return err
		}

		status := "sent"
		if err := mailer.Send(ctx, p.Recipient, p.Subject, p.Category); err != nil {
			log.Printf("[EmailWorker] delivery failed for booking %s: %v", p.BookingID, err)
			status = "failed"
		}

		event := models.EmailEvent{
			Category:  p.Category,
			Subject:   p.Subject,
			Recipient: p.Recipient,
			Status:    status,
			Timestamp: time.Now(),
		}
		if err := bookings.AppendEmailEvent(ctx, p.BookingID, event); err != nil {
			log.Printf("[EmailWorker] failed to record email event for booking %s: %v", p.BookingID, err)
		}
		return nil
	}
}
