package contact

import (
	"context"
	"strings"
	"time"

	contactRepo "clinvetia/database/repository/contact"
	"clinvetia/models"
	"clinvetia/services/cleanup"
	"clinvetia/services/fault"
	"clinvetia/services/notification"
	"clinvetia/utils"

	"go.uber.org/zap"
)

// CreateRequest carries a submitted lead form.
type CreateRequest struct {
	Nombre       string             `json:"nombre"`
	Email        string             `json:"email"`
	Telefono     string             `json:"telefono"`
	Clinica      string             `json:"clinica"`
	Mensaje      string             `json:"mensaje"`
	BookingID    string             `json:"bookingId"`
	SessionToken string             `json:"sessionToken"`
	ROI          *models.ROIFigures `json:"roi"`
}

// Service binds submitted leads to bookings and sessions.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*models.Contact, error)
	Delete(ctx context.Context, contactID string) error
}

// DefaultService implements Service.
type DefaultService struct {
	Repo     contactRepo.ContactRepository
	Cleanup  cleanup.Service
	Notifier notification.Notifier
	Now      func() time.Time
}

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create inserts the contact with no conflict detection: multiple contacts per
// email are allowed, and the most recent one matching a lookup key wins in
// read paths.
func (s *DefaultService) Create(ctx context.Context, req CreateRequest) (*models.Contact, error) {
	if strings.TrimSpace(req.Nombre) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, fault.New(fault.Validation, "nombre and email are required")
	}

	c := &models.Contact{
		Nombre:       strings.TrimSpace(req.Nombre),
		Email:        strings.TrimSpace(req.Email),
		Telefono:     strings.TrimSpace(req.Telefono),
		Clinica:      strings.TrimSpace(req.Clinica),
		Mensaje:      req.Mensaje,
		BookingID:    req.BookingID,
		SessionToken: req.SessionToken,
		ROI:          req.ROI,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if c.BookingID != "" && s.Notifier != nil {
		err := s.Notifier.EnqueueBookingEmail(ctx, c.BookingID, "demo_confirmation",
			"Tu demo está confirmada", c.Email)
		if err != nil {
			utils.GetLogger().Warn("contact create: notification enqueue failed",
				zap.String("bookingId", c.BookingID), zap.Error(err))
		}
	}
	return c, nil
}

// Delete runs the cleanup cascade before removing the row, never after. A
// failed removal can at worst leave a contact whose ROI is already cleared,
// not an orphaned session.
func (s *DefaultService) Delete(ctx context.Context, contactID string) error {
	if contactID == "" {
		return fault.New(fault.Validation, "contact id is required")
	}

	c, err := s.Repo.GetByID(ctx, contactID)
	if err != nil {
		return err
	}
	if c == nil {
		return fault.New(fault.NotFound, "contact not found")
	}

	anchor := cleanup.Anchor{ContactID: c.ID, BookingID: c.BookingID}
	if c.SessionToken != "" {
		anchor.SessionTokens = []string{c.SessionToken}
	}
	if err := s.Cleanup.Run(ctx, anchor); err != nil {
		return err
	}

	return s.Repo.Delete(ctx, contactID)
}
