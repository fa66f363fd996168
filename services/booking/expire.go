package booking

import (
	"context"

	"clinvetia/services/cleanup"
	"clinvetia/services/fault"
	"clinvetia/utils"

	"go.uber.org/zap"
)

// Expire terminates a booking on request of its access-token holder. The
// cleanup cascade runs first; the booking then flips to expired with every
// expiry timestamp collapsed to now, so cached client-side countdowns read as
// expired immediately. Calling Expire on an already-expired booking is a
// no-op, not an error.
func (s *DefaultService) Expire(ctx context.Context, bookingID, accessToken string) error {
	if bookingID == "" {
		return fault.New(fault.Validation, "booking id is required")
	}
	if accessToken == "" {
		return fault.New(fault.Unauthorized, "access token is required")
	}

	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return fault.New(fault.NotFound, "booking not found")
	}
	if b.AccessToken != accessToken {
		return fault.New(fault.Unauthorized, "invalid access token")
	}

	logger := utils.GetLogger()

	anchor := cleanup.Anchor{BookingID: b.ID}
	if b.SessionToken != "" {
		anchor.SessionTokens = []string{b.SessionToken}
	}
	if err := s.Cleanup.Run(ctx, anchor); err != nil {
		// Best-effort cascade; the expiry itself must still land.
		logger.Warn("booking expire: cleanup cascade failed",
			zap.String("bookingId", b.ID), zap.Error(err))
	}

	if err := s.Repo.Expire(ctx, b.ID, s.now()); err != nil {
		return err
	}
	logger.Info("booking expired", zap.String("bookingId", b.ID))

	s.notifyExpired(ctx, b.ID)
	return nil
}

// notifyExpired queues the cancellation notice for the newest linked contact,
// if any. Failures are logged and ignored.
func (s *DefaultService) notifyExpired(ctx context.Context, bookingID string) {
	if s.Notifier == nil {
		return
	}
	contacts, err := s.Contacts.ListByBooking(ctx, bookingID)
	if err != nil || len(contacts) == 0 {
		return
	}
	err = s.Notifier.EnqueueBookingEmail(ctx, bookingID, "demo_cancelled",
		"Tu demo ha sido cancelada", contacts[0].Email)
	if err != nil {
		utils.GetLogger().Warn("booking expire: notification enqueue failed",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
}
