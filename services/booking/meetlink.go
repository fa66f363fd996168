package booking

import (
	"context"
	"strings"

	"clinvetia/utils"

	"go.uber.org/zap"
)

const meetLinkBase = "https://meet.google.com/lookup/"

// DeriveMeetLink builds the meeting link deterministically from the booking
// id, so backfilling is idempotent: rerunning derives the same link.
func DeriveMeetLink(bookingID string) string {
	slug := strings.ToLower(strings.ReplaceAll(bookingID, "-", ""))
	if len(slug) > 12 {
		slug = slug[:12]
	}
	return meetLinkBase + "demo-" + slug
}

// BackfillMeetLinks finds every booking lacking a meeting link and writes one
// derived from its id. Safe to run concurrently with new booking creation:
// the bulk update is unordered, so a partial failure never blocks unrelated
// rows, and a booking created mid-run is simply picked up next time.
func (s *DefaultService) BackfillMeetLinks(ctx context.Context) (int64, error) {
	missing, err := s.Repo.ListMissingMeetLink(ctx)
	if err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	links := make(map[string]string, len(missing))
	for _, b := range missing {
		links[b.ID] = DeriveMeetLink(b.ID)
	}

	updated, err := s.Repo.BulkSetMeetLinks(ctx, links)
	if err != nil {
		return 0, err
	}
	utils.GetLogger().Info("meet link backfill finished",
		zap.Int("candidates", len(missing)), zap.Int64("updated", updated))
	return updated, nil
}
