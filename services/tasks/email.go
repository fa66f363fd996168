package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeEmailSend = "email:send"

// EmailPayload describes one notification to deliver and record on a booking.
type EmailPayload struct {
	BookingID string `json:"bookingId"`
	Category  string `json:"category"`
	Subject   string `json:"subject"`
	Recipient string `json:"recipient"`
}

// NewEmailTask builds the asynq task for an email notification. Retries are
// disabled: a failed delivery is recorded on the booking's emailEvents log,
// never replayed automatically.
func NewEmailTask(payload EmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailSend, b)
	opts := []asynq.Option{asynq.MaxRetry(0)}
	return task, opts, nil
}
