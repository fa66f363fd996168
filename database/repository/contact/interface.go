package contactRepo

import (
	"context"

	"clinvetia/models"
)

// ContactRepository defines persistence operations for lead contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, contactID string) (*models.Contact, error)
	// ListByBooking and ListBySession return contacts newest first.
	ListByBooking(ctx context.Context, bookingID string) ([]models.Contact, error)
	ListBySession(ctx context.Context, sessionToken string) ([]models.Contact, error)
	ExistsBySession(ctx context.Context, sessionToken string) (bool, error)
	// ClearROI nulls every ROI subfield on the matched contacts without
	// deleting the rows. Returns the modified count.
	ClearROI(ctx context.Context, filterIDs []string) (int64, error)
	Delete(ctx context.Context, contactID string) error
	EnsureIndexes() error
}
