package contact

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clinvetia/models"
	"clinvetia/services/cleanup"
	"clinvetia/services/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memContactRepo struct {
	contacts map[string]*models.Contact
	nextID   int
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: map[string]*models.Contact{}}
}

func (r *memContactRepo) Create(_ context.Context, c *models.Contact) error {
	if c.ID == "" {
		r.nextID++
		c.ID = fmt.Sprintf("c%d", r.nextID)
	}
	cp := *c
	r.contacts[c.ID] = &cp
	return nil
}

func (r *memContactRepo) GetByID(_ context.Context, id string) (*models.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memContactRepo) ListByBooking(_ context.Context, bookingID string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range r.contacts {
		if c.BookingID == bookingID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memContactRepo) ListBySession(_ context.Context, token string) ([]models.Contact, error) {
	var out []models.Contact
	for _, c := range r.contacts {
		if c.SessionToken == token {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memContactRepo) ExistsBySession(_ context.Context, token string) (bool, error) {
	for _, c := range r.contacts {
		if c.SessionToken == token {
			return true, nil
		}
	}
	return false, nil
}

func (r *memContactRepo) ClearROI(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if c, ok := r.contacts[id]; ok && c.ROI != nil {
			c.ROI = &models.ROIFigures{}
			n++
		}
	}
	return n, nil
}

func (r *memContactRepo) Delete(_ context.Context, id string) error {
	delete(r.contacts, id)
	return nil
}

func (r *memContactRepo) EnsureIndexes() error { return nil }

type recordingCleanup struct {
	anchors []cleanup.Anchor
}

func (c *recordingCleanup) Run(_ context.Context, anchor cleanup.Anchor) error {
	c.anchors = append(c.anchors, anchor)
	return nil
}

type recordingNotifier struct {
	bookingIDs []string
	categories []string
}

func (n *recordingNotifier) EnqueueBookingEmail(_ context.Context, bookingID, category, _, _ string) error {
	n.bookingIDs = append(n.bookingIDs, bookingID)
	n.categories = append(n.categories, category)
	return nil
}

func TestCreateTrimsAndPersists(t *testing.T) {
	repo := newMemContactRepo()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := &DefaultService{Repo: repo, Now: func() time.Time { return now }}

	c, err := svc.Create(context.Background(), CreateRequest{
		Nombre:  "  Ana García  ",
		Email:   " ana@clinica.es ",
		Clinica: "Clínica Vet Sur",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana García", c.Nombre)
	assert.Equal(t, "ana@clinica.es", c.Email)
	assert.Equal(t, now, c.CreatedAt)
	require.NotEmpty(t, c.ID)

	stored, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateRequiresNombreAndEmail(t *testing.T) {
	svc := &DefaultService{Repo: newMemContactRepo()}

	for name, req := range map[string]CreateRequest{
		"missing nombre":   {Email: "ana@clinica.es"},
		"missing email":    {Nombre: "Ana"},
		"whitespace only":  {Nombre: "   ", Email: "ana@clinica.es"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, fault.Validation, fault.CodeOf(err))
		})
	}
}

func TestCreateWithBookingEnqueuesConfirmation(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := &DefaultService{Repo: newMemContactRepo(), Notifier: notifier}

	_, err := svc.Create(context.Background(), CreateRequest{
		Nombre: "Ana", Email: "ana@clinica.es", BookingID: "b1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, notifier.bookingIDs)
	assert.Equal(t, []string{"demo_confirmation"}, notifier.categories)

	// No booking, no email.
	_, err = svc.Create(context.Background(), CreateRequest{Nombre: "Luis", Email: "luis@clinica.es"})
	require.NoError(t, err)
	assert.Len(t, notifier.bookingIDs, 1)
}

func TestDeleteRunsCascadeBeforeRemoval(t *testing.T) {
	repo := newMemContactRepo()
	cascade := &recordingCleanup{}
	svc := &DefaultService{Repo: repo, Cleanup: cascade}

	c, err := svc.Create(context.Background(), CreateRequest{
		Nombre: "Ana", Email: "ana@clinica.es", BookingID: "b1", SessionToken: "s1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), c.ID))

	require.Len(t, cascade.anchors, 1)
	assert.Equal(t, c.ID, cascade.anchors[0].ContactID)
	assert.Equal(t, "b1", cascade.anchors[0].BookingID)
	assert.Equal(t, []string{"s1"}, cascade.anchors[0].SessionTokens)

	gone, err := repo.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestDeleteUnknownContact(t *testing.T) {
	svc := &DefaultService{Repo: newMemContactRepo(), Cleanup: &recordingCleanup{}}

	err := svc.Delete(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, fault.NotFound, fault.CodeOf(err))

	err = svc.Delete(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.CodeOf(err))
}
