package booking

import (
	"context"
	"time"

	bookingRepo "clinvetia/database/repository/booking"
	contactRepo "clinvetia/database/repository/contact"
	"clinvetia/models"
	"clinvetia/services/cleanup"
	"clinvetia/services/notification"
	"clinvetia/services/verify"
)

// DefaultDemoDuration is the only duration a first-time client may book.
const DefaultDemoDuration = 30

// FormWindow is how long a fresh booking accepts its contact form.
const FormWindow = 10 * time.Minute

// CreateRequest carries the inputs of a booking creation.
type CreateRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	Duration     int    `json:"duration"`
	SessionToken string `json:"sessionToken"`
	ProofToken   string `json:"proofToken"`
	ClientIP     string `json:"-"`
}

// View is the booking projection returned to authenticated reads. The
// capability token itself is only ever present on the creation response.
type View struct {
	ID               string          `json:"id"`
	Date             string          `json:"date"`
	Time             string          `json:"time"`
	Duration         int             `json:"duration"`
	Status           string          `json:"status"`
	ExpiresAt        time.Time       `json:"expiresAt"`
	FormExpiresAt    time.Time       `json:"formExpiresAt"`
	DemoExpiresAt    time.Time       `json:"demoExpiresAt"`
	GoogleMeetLink   string          `json:"googleMeetLink,omitempty"`
	ContactSubmitted bool            `json:"contactSubmitted"`
	Contact          *models.Contact `json:"contact,omitempty"`
}

// Created is the one-time creation response carrying the access token.
type Created struct {
	View
	AccessToken string `json:"accessToken"`
}

// Service is the booking lifecycle manager.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Created, error)
	GetByID(ctx context.Context, bookingID, accessToken string) (*View, error)
	GetBySession(ctx context.Context, sessionToken string) (*View, error)
	Expire(ctx context.Context, bookingID, accessToken string) error
	BackfillMeetLinks(ctx context.Context) (int64, error)
}

// DefaultService implements Service.
type DefaultService struct {
	Repo     bookingRepo.BookingRepository
	Contacts contactRepo.ContactRepository
	Verifier verify.Verifier
	Cleanup  cleanup.Service
	Notifier notification.Notifier
	MinScore float64
	Now      func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
