package roi

import (
	"context"
	"time"

	sessionRepo "clinvetia/database/repository/session"
	"clinvetia/models"
	"clinvetia/services/fault"
	"clinvetia/services/verify"
	"clinvetia/utils"
)

// Input carries the figures of a completed ROI calculation.
type Input struct {
	MonthlyPatients float64 `json:"monthlyPatients"`
	AverageTicket   float64 `json:"averageTicket"`
	ConversionLoss  float64 `json:"conversionLoss"`
}

// SessionService manages token-addressable ROI snapshots. Sessions are
// immutable: a new calculation creates a new token rather than mutating.
type SessionService interface {
	// CreateVerified gates creation behind the anti-automation verifier; it
	// serves the public web endpoint.
	CreateVerified(ctx context.Context, input Input, proofToken, ip string) (*models.Session, error)
	// Create mints a session directly; it serves trusted internal flows such
	// as the conversational channel.
	Create(ctx context.Context, input Input) (*models.Session, error)
	Read(ctx context.Context, token string) (*models.Session, error)
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Repo     sessionRepo.SessionRepository
	Verifier verify.Verifier
	MinScore float64
	Now      func() time.Time
}

func (s *DefaultSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateVerified verifies the proof token then mints the session.
func (s *DefaultSessionService) CreateVerified(ctx context.Context, input Input, proofToken, ip string) (*models.Session, error) {
	result, err := s.Verifier.Verify(ctx, proofToken, "roi", s.MinScore, ip)
	if err != nil {
		return nil, fault.New(fault.Upstream, "could not verify request")
	}
	if !result.OK {
		return nil, fault.New(fault.Validation, result.Reason)
	}
	return s.Create(ctx, input)
}

// Create computes the estimate and persists the snapshot under a fresh token.
func (s *DefaultSessionService) Create(ctx context.Context, input Input) (*models.Session, error) {
	if input.MonthlyPatients <= 0 || input.AverageTicket <= 0 || input.ConversionLoss <= 0 {
		return nil, fault.New(fault.Validation, "ROI figures must be positive numbers")
	}

	estimate := Calculate(input.MonthlyPatients, input.AverageTicket, input.ConversionLoss)
	now := s.now()
	session := &models.Session{
		Token:     utils.NewSessionToken(),
		ExpiresAt: now.Add(models.SessionTTL),
		CreatedAt: now,
		ROI: models.ROIFigures{
			MonthlyPatients: &input.MonthlyPatients,
			AverageTicket:   &input.AverageTicket,
			ConversionLoss:  &input.ConversionLoss,
			ROI:             &estimate.ROI,
		},
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Read resolves a token, distinguishing a session that never existed from one
// that lapsed so callers can offer "start over" messaging.
func (s *DefaultSessionService) Read(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, fault.New(fault.Validation, "session token is required")
	}

	session, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fault.New(fault.NotFound, "session not found")
	}
	if session.Expired(s.now()) {
		return nil, fault.New(fault.Expired, "session has expired")
	}
	return session, nil
}
