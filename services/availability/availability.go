package availability

import (
	"context"
	"time"

	bookingRepo "clinvetia/database/repository/booking"
	"clinvetia/services/fault"
)

// CandidateSlots is the fixed list of bookable half-hour starts covering the
// two daily demo shifts.
var CandidateSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00",
	"16:00", "16:30", "17:00", "17:30", "18:00", "18:30", "19:00",
}

// DaySlots is the availability projection for one calendar day.
type DaySlots struct {
	Date     string   `json:"date,omitempty"`
	Free     []string `json:"free"`
	Occupied []string `json:"occupied"`
}

// Service computes free/occupied demo slots for a calendar date.
type Service interface {
	DaySlots(ctx context.Context, date string) (*DaySlots, error)
}

// DefaultService implements Service against the booking store.
type DefaultService struct {
	Bookings bookingRepo.BookingRepository
}

// DaySlots returns the candidate list minus slots held by confirmed bookings.
// Omitting the date returns the full candidate list with no exclusions; the
// caller decides per day.
func (s *DefaultService) DaySlots(ctx context.Context, date string) (*DaySlots, error) {
	if date == "" {
		return &DaySlots{Free: append([]string{}, CandidateSlots...), Occupied: []string{}}, nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fault.New(fault.Validation, "invalid date format, expected YYYY-MM-DD")
	}

	bookings, err := s.Bookings.ListConfirmedByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		taken[b.Time] = true
	}

	out := &DaySlots{Date: date, Free: []string{}, Occupied: []string{}}
	for _, slot := range CandidateSlots {
		if taken[slot] {
			out.Occupied = append(out.Occupied, slot)
		} else {
			out.Free = append(out.Free, slot)
		}
	}
	return out, nil
}
