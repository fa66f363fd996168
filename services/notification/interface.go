package notification

import "context"

// Notifier enqueues best-effort email notifications. Callers log and ignore
// failures; a lost notification never aborts the primary operation.
type Notifier interface {
	EnqueueBookingEmail(ctx context.Context, bookingID, category, subject, recipient string) error
}

// Mailer is the outbound email provider collaborator (interface only;
// implementation lives outside this core).
type Mailer interface {
	Send(ctx context.Context, recipient, subject, category string) error
}
