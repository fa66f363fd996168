package notification

import (
	"context"

	"clinvetia/services/tasks"
	"clinvetia/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqNotifier queues email notifications for the background worker.
type AsynqNotifier struct {
	client *asynq.Client
}

// NewAsynqNotifier wraps an asynq client.
func NewAsynqNotifier(client *asynq.Client) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

// EnqueueBookingEmail enqueues one notification task.
func (n *AsynqNotifier) EnqueueBookingEmail(ctx context.Context, bookingID, category, subject, recipient string) error {
	task, opts, err := tasks.NewEmailTask(tasks.EmailPayload{
		BookingID: bookingID,
		Category:  category,
		Subject:   subject,
		Recipient: recipient,
	})
	if err != nil {
		return err
	}
	if _, err := n.client.EnqueueContext(ctx, task, opts...); err != nil {
		return err
	}
	return nil
}

// LogMailer is the development stand-in for the outbound email provider.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, recipient, subject, category string) error {
	utils.GetLogger().Info("outbound email",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.String("category", category))
	return nil
}
