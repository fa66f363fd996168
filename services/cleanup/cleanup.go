// Package cleanup implements the cascade that runs on every terminal booking
// or contact transition: ROI figures are nulled on every reachable contact and
// every reachable ROI session is deleted. The cascade is best-effort and
// idempotent; correctness depends on exhaustively walking the sessionToken
// soft foreign key, not on store-enforced relations.
package cleanup

import (
	"context"

	contactRepo "clinvetia/database/repository/contact"
	sessionRepo "clinvetia/database/repository/session"
	"clinvetia/models"
	"clinvetia/utils"

	"go.uber.org/zap"
)

// Anchor names the entity whose deletion/expiry triggered the cascade, plus
// any session tokens the caller already knows about.
type Anchor struct {
	BookingID     string
	ContactID     string
	SessionTokens []string
}

// Service runs the cleanup cascade.
type Service interface {
	Run(ctx context.Context, anchor Anchor) error
}

// DefaultService implements Service against the contact and session stores.
type DefaultService struct {
	Contacts contactRepo.ContactRepository
	Sessions sessionRepo.SessionRepository
}

// Run walks every contact reachable from the anchor, nulls their ROI fields,
// then deletes every session whose token was collected along the way. A
// session-deletion failure is logged and swallowed: the orphaned session
// self-expires within 24 hours and never corrupts an invariant.
func (s *DefaultService) Run(ctx context.Context, anchor Anchor) error {
	logger := utils.GetLogger()

	contacts, err := s.reachableContacts(ctx, anchor)
	if err != nil {
		return err
	}

	tokenSet := make(map[string]bool)
	for _, t := range anchor.SessionTokens {
		if t != "" {
			tokenSet[t] = true
		}
	}

	ids := make([]string, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.ID)
		if c.SessionToken != "" {
			tokenSet[c.SessionToken] = true
		}
	}

	if _, err := s.Contacts.ClearROI(ctx, ids); err != nil {
		return err
	}

	tokens := make([]string, 0, len(tokenSet))
	for t := range tokenSet {
		tokens = append(tokens, t)
	}
	if _, err := s.Sessions.DeleteByTokens(ctx, tokens); err != nil {
		logger.Warn("cleanup: session deletion failed, orphans will self-expire",
			zap.Error(err), zap.Strings("tokens", tokens))
	}
	return nil
}

// reachableContacts collects contacts by direct id, by bookingId and by each
// anchor session token. Duplicates are collapsed by contact id.
func (s *DefaultService) reachableContacts(ctx context.Context, anchor Anchor) ([]models.Contact, error) {
	seen := make(map[string]bool)
	var out []models.Contact

	add := func(contacts []models.Contact) {
		for _, c := range contacts {
			if !seen[c.ID] {
				seen[c.ID] = true
				out = append(out, c)
			}
		}
	}

	if anchor.ContactID != "" {
		c, err := s.Contacts.GetByID(ctx, anchor.ContactID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			add([]models.Contact{*c})
		}
	}
	if anchor.BookingID != "" {
		contacts, err := s.Contacts.ListByBooking(ctx, anchor.BookingID)
		if err != nil {
			return nil, err
		}
		add(contacts)
	}
	for _, token := range anchor.SessionTokens {
		if token == "" {
			continue
		}
		contacts, err := s.Contacts.ListBySession(ctx, token)
		if err != nil {
			return nil, err
		}
		add(contacts)
	}
	return out, nil
}
