package models

import "time"

// Booking statuses. The availability and active-booking queries treat both
// Pending and Confirmed as slot-holding; the current creation path only ever
// writes Confirmed.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusExpired   = "expired"
	BookingStatusCancelled = "cancelled"
)

// Booking represents a reserved demo slot.
type Booking struct {
	ID             string       `bson:"id" json:"id"`                             // Unique booking identifier (UUID)
	Date           string       `bson:"date" json:"date"`                         // Booking date in "YYYY-MM-DD" format
	Time           string       `bson:"time" json:"time"`                         // Slot start in "HH:MM"
	Duration       int          `bson:"duration" json:"duration"`                 // Duration in minutes
	Status         string       `bson:"status" json:"status"`                     // pending | confirmed | expired | cancelled
	SessionToken   string       `bson:"sessionToken,omitempty" json:"sessionToken,omitempty"` // Browsing session that created the booking
	AccessToken    string       `bson:"accessToken" json:"-"`                     // Capability secret, returned only once at creation
	ExpiresAt      time.Time    `bson:"expiresAt" json:"expiresAt"`               // End of the booking day
	FormExpiresAt  time.Time    `bson:"formExpiresAt" json:"formExpiresAt"`       // Window to submit the contact form
	DemoExpiresAt  time.Time    `bson:"demoExpiresAt" json:"demoExpiresAt"`       // End of the booked time window
	GoogleMeetLink string       `bson:"googleMeetLink,omitempty" json:"googleMeetLink,omitempty"`
	EmailEvents    []EmailEvent `bson:"emailEvents,omitempty" json:"emailEvents,omitempty"`
	CreatedAt      time.Time    `bson:"createdAt" json:"createdAt"`
}

// EmailEvent is one entry of the append-only notification log on a booking.
type EmailEvent struct {
	Category  string    `bson:"category" json:"category"`
	Subject   string    `bson:"subject" json:"subject"`
	Recipient string    `bson:"recipient" json:"recipient"`
	Status    string    `bson:"status" json:"status"` // sent | failed
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// HoldsSlot reports whether the booking still occupies its slot: status is
// pending or confirmed and the demo window has not passed.
func (b *Booking) HoldsSlot(now time.Time) bool {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return false
	}
	return b.DemoExpiresAt.After(now)
}

// EffectiveStatus applies lazy expiry: a pending or confirmed booking whose
// demo or day window has passed reads as expired without a background sweep.
func (b *Booking) EffectiveStatus(now time.Time) string {
	if b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed {
		if !b.DemoExpiresAt.After(now) || !b.ExpiresAt.After(now) {
			return BookingStatusExpired
		}
	}
	return b.Status
}
