package models

import "time"

// SessionTTL is how long an ROI session stays readable after creation.
const SessionTTL = 24 * time.Hour

// Session is an ephemeral ROI-calculation record, addressable only by its
// opaque token. Sessions are immutable once created; a new calculation creates
// a new token rather than mutating.
type Session struct {
	Token     string     `bson:"token" json:"token"`
	ExpiresAt time.Time  `bson:"expiresAt" json:"expiresAt"`
	ROI       ROIFigures `bson:"roi" json:"roi"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
