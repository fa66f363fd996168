package booking

import (
	"context"

	"clinvetia/models"
	"clinvetia/services/fault"
	"clinvetia/utils"

	"go.uber.org/zap"
)

// GetByID reads a booking by id; the access token is the only credential and
// must match as an exact string.
func (s *DefaultService) GetByID(ctx context.Context, bookingID, accessToken string) (*View, error) {
	if bookingID == "" {
		return nil, fault.New(fault.Validation, "booking id is required")
	}
	if accessToken == "" {
		return nil, fault.New(fault.Unauthorized, "access token is required")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fault.New(fault.NotFound, "booking not found")
	}
	if b.AccessToken != accessToken {
		return nil, fault.New(fault.Unauthorized, "invalid access token")
	}

	view := s.project(ctx, b)
	return &view, nil
}

// GetBySession reads the most recent active booking of a browsing session.
func (s *DefaultService) GetBySession(ctx context.Context, sessionToken string) (*View, error) {
	if sessionToken == "" {
		return nil, fault.New(fault.Validation, "session token is required")
	}

	b, err := s.Repo.GetActiveBySession(ctx, sessionToken, s.now())
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fault.New(fault.NotFound, "no active booking for this session")
	}

	view := s.project(ctx, b)
	return &view, nil
}

// project builds the read projection: lazy-expired status plus the richest
// linked contact (a fully populated ROI beats one that lacks figures).
func (s *DefaultService) project(ctx context.Context, b *models.Booking) View {
	view := View{
		ID:             b.ID,
		Date:           b.Date,
		Time:           b.Time,
		Duration:       b.Duration,
		Status:         b.EffectiveStatus(s.now()),
		ExpiresAt:      b.ExpiresAt,
		FormExpiresAt:  b.FormExpiresAt,
		DemoExpiresAt:  b.DemoExpiresAt,
		GoogleMeetLink: b.GoogleMeetLink,
	}

	contacts, err := s.Contacts.ListByBooking(ctx, b.ID)
	if err != nil {
		utils.GetLogger().Warn("booking read: contact lookup failed",
			zap.String("bookingId", b.ID), zap.Error(err))
		return view
	}
	view.ContactSubmitted = len(contacts) > 0

	best := pickRichest(contacts)
	if best == nil && b.SessionToken != "" {
		sessionContacts, err := s.Contacts.ListBySession(ctx, b.SessionToken)
		if err != nil {
			utils.GetLogger().Warn("booking read: session contact lookup failed",
				zap.String("bookingId", b.ID), zap.Error(err))
			return view
		}
		best = pickRichest(sessionContacts)
	}
	view.Contact = best
	return view
}

// pickRichest prefers the newest contact whose ROI fields are fully populated,
// falling back to the newest contact overall. Lists arrive newest first.
func pickRichest(contacts []models.Contact) *models.Contact {
	for i := range contacts {
		if contacts[i].ROI.Complete() {
			return &contacts[i]
		}
	}
	if len(contacts) > 0 {
		return &contacts[0]
	}
	return nil
}
