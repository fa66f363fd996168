package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "clinvetia/database/repository/booking"
	"clinvetia/models"
	"clinvetia/services/fault"
	"clinvetia/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create reserves a demo slot. The happy path persists status=confirmed
// directly; the pending status stays reachable for flows that need a
// synchronous slot lock but nothing here creates it.
func (s *DefaultService) Create(ctx context.Context, req CreateRequest) (*Created, error) {
	start, err := parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if req.Duration <= 0 {
		return nil, fault.New(fault.Validation, "duration must be a positive number of minutes")
	}

	result, err := s.Verifier.Verify(ctx, req.ProofToken, "booking", s.MinScore, req.ClientIP)
	if err != nil {
		return nil, fault.New(fault.Upstream, "could not verify request")
	}
	if !result.OK {
		return nil, fault.New(fault.Validation, result.Reason)
	}

	// A session token already known to a contact marks a registered client;
	// everyone else gets the first-time demo duration only.
	registered := false
	if req.SessionToken != "" {
		registered, err = s.Contacts.ExistsBySession(ctx, req.SessionToken)
		if err != nil {
			return nil, err
		}
	}
	if !registered && req.Duration != DefaultDemoDuration {
		return nil, fault.New(fault.Forbidden, "Para nuevos clientes, la demo disponible es de 30 minutos.")
	}

	now := s.now()

	if req.SessionToken != "" {
		active, err := s.Repo.GetActiveBySession(ctx, req.SessionToken, now)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, fault.New(fault.Conflict, "esta sesión ya tiene una demo activa").
				WithMeta("bookingId", active.ID).
				WithMeta("demoExpiresAt", active.DemoExpiresAt)
		}
	}

	taken, err := s.Repo.GetConfirmedBySlot(ctx, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, fault.New(fault.Conflict, "ese horario ya está reservado")
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		Date:          req.Date,
		Time:          req.Time,
		Duration:      req.Duration,
		Status:        models.BookingStatusConfirmed,
		SessionToken:  req.SessionToken,
		AccessToken:   utils.NewAccessToken(),
		DemoExpiresAt: start.Add(time.Duration(req.Duration) * time.Minute),
		ExpiresAt:     endOfDay(start),
		FormExpiresAt: now.Add(FormWindow),
		CreatedAt:     now,
	}

	if err := s.Repo.Create(ctx, b); err != nil {
		// The partial unique index decides slot races: the second writer of a
		// confirmed (date, time) pair loses here rather than in the read gap.
		if bookingRepo.IsDuplicateKey(err) {
			return nil, fault.New(fault.Conflict, "ese horario ya está reservado")
		}
		return nil, err
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("date", b.Date),
		zap.String("time", b.Time))

	return &Created{View: s.project(ctx, b), AccessToken: b.AccessToken}, nil
}

// parseSlot validates the date and time inputs and returns the slot start.
func parseSlot(date, slot string) (time.Time, error) {
	if date == "" || slot == "" {
		return time.Time{}, fault.New(fault.Validation, "date and time are required")
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, slot), time.Local)
	if err != nil {
		return time.Time{}, fault.New(fault.Validation, "invalid date or time format, expected YYYY-MM-DD and HH:MM")
	}
	return start, nil
}

// endOfDay returns the first instant of the following calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
