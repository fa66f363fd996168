package bookingRepo

import (
	"context"
	"time"

	"clinvetia/models"
)

// BookingRepository defines persistence operations for demo bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	// GetConfirmedBySlot returns the confirmed booking occupying (date, time),
	// or nil when the slot is free.
	GetConfirmedBySlot(ctx context.Context, date, slot string) (*models.Booking, error)
	// GetActiveBySession returns the most recent slot-holding booking for a
	// session token (status pending or confirmed, demo window still open), or
	// nil when none exists.
	GetActiveBySession(ctx context.Context, sessionToken string, now time.Time) (*models.Booking, error)
	ListConfirmedByDate(ctx context.Context, date string) ([]models.Booking, error)
	// Expire flips the booking to expired, detaches its session token and
	// collapses every expiry timestamp to now.
	Expire(ctx context.Context, bookingID string, now time.Time) error
	SetStatus(ctx context.Context, bookingID, status string) error
	AppendEmailEvent(ctx context.Context, bookingID string, event models.EmailEvent) error
	ListMissingMeetLink(ctx context.Context) ([]models.Booking, error)
	// BulkSetMeetLinks writes meeting links with an unordered bulk update so a
	// failure on one row does not block the rest. Returns the modified count.
	BulkSetMeetLinks(ctx context.Context, links map[string]string) (int64, error)
	EnsureIndexes() error
}
