package availability

import (
	"context"
	"testing"
	"time"

	"clinvetia/models"
	"clinvetia/services/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedBookingRepo struct {
	byDate map[string][]models.Booking
}

func (r *fixedBookingRepo) ListConfirmedByDate(_ context.Context, date string) ([]models.Booking, error) {
	return r.byDate[date], nil
}

func (r *fixedBookingRepo) Create(context.Context, *models.Booking) error { return nil }
func (r *fixedBookingRepo) GetByID(context.Context, string) (*models.Booking, error) {
	return nil, nil
}
func (r *fixedBookingRepo) GetConfirmedBySlot(context.Context, string, string) (*models.Booking, error) {
	return nil, nil
}
func (r *fixedBookingRepo) GetActiveBySession(context.Context, string, time.Time) (*models.Booking, error) {
	return nil, nil
}
func (r *fixedBookingRepo) Expire(context.Context, string, time.Time) error     { return nil }
func (r *fixedBookingRepo) SetStatus(context.Context, string, string) error     { return nil }
func (r *fixedBookingRepo) AppendEmailEvent(context.Context, string, models.EmailEvent) error {
	return nil
}
func (r *fixedBookingRepo) ListMissingMeetLink(context.Context) ([]models.Booking, error) {
	return nil, nil
}
func (r *fixedBookingRepo) BulkSetMeetLinks(context.Context, map[string]string) (int64, error) {
	return 0, nil
}
func (r *fixedBookingRepo) EnsureIndexes() error { return nil }

func TestDaySlotsWithoutDateReturnsFullCandidateList(t *testing.T) {
	svc := &DefaultService{Bookings: &fixedBookingRepo{}}

	got, err := svc.DaySlots(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, CandidateSlots, got.Free)
	assert.Empty(t, got.Occupied)
	assert.Empty(t, got.Date)
}

func TestDaySlotsExcludesConfirmedBookings(t *testing.T) {
	repo := &fixedBookingRepo{byDate: map[string][]models.Booking{
		"2026-09-01": {
			{ID: "b1", Date: "2026-09-01", Time: "10:00", Status: models.BookingStatusConfirmed},
			{ID: "b2", Date: "2026-09-01", Time: "17:30", Status: models.BookingStatusConfirmed},
		},
	}}
	svc := &DefaultService{Bookings: repo}

	got, err := svc.DaySlots(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "17:30"}, got.Occupied)
	assert.Len(t, got.Free, len(CandidateSlots)-2)
	assert.NotContains(t, got.Free, "10:00")
	assert.NotContains(t, got.Free, "17:30")
}

func TestDaySlotsFullyBookedDay(t *testing.T) {
	var bookings []models.Booking
	for _, slot := range CandidateSlots {
		bookings = append(bookings, models.Booking{Date: "2026-09-01", Time: slot, Status: models.BookingStatusConfirmed})
	}
	svc := &DefaultService{Bookings: &fixedBookingRepo{byDate: map[string][]models.Booking{"2026-09-01": bookings}}}

	got, err := svc.DaySlots(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, got.Free)
	assert.Equal(t, CandidateSlots, got.Occupied)
}

func TestDaySlotsRejectsMalformedDate(t *testing.T) {
	svc := &DefaultService{Bookings: &fixedBookingRepo{}}

	_, err := svc.DaySlots(context.Background(), "01/09/2026")
	require.Error(t, err)
	assert.Equal(t, fault.Validation, fault.CodeOf(err))
}
