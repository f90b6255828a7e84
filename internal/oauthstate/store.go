// Package oauthstate keeps the anti-forgery state issued with each OAuth
// authorization URL until the callback consumes it.
package oauthstate

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

var ErrStateNotFound = errors.New("oauth state not found or expired")

// Store maps a state token to the user who requested it. Consume removes
// the state, so each state can be used once.
type Store interface {
	Put(ctx context.Context, state, userID string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (string, error)
}

// NewState returns a random URL-safe state token.
func NewState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}
