package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"github.com/google/uuid"
)

// NewAccessToken issues the capability secret handed out once at booking creation.
// Tokens are high-entropy UUIDs; lookups compare them as exact strings.
func NewAccessToken() string {
	return uuid.New().String()
}

// NewSessionToken issues an opaque token for ROI/browsing sessions. Falls
// back to a UUID if the system entropy source fails.
func NewSessionToken() string {
	token, err := NewOpaqueToken(32)
	if err != nil {
		return uuid.New().String()
	}
	return token
}

// NewOpaqueToken generates a secure random token of the specified length.
// It returns a base32 encoded string (without padding) truncated to the desired length.
func NewOpaqueToken(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(token) > length {
		token = token[:length]
	}
	return token, nil
}
