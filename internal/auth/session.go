// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Session identifier configuration.
const (
	SessionIDBytes    = 32                  // 32 bytes = 64 hex chars
	DefaultSessionTTL = 30 * 24 * time.Hour // browser sessions live for a month
)

// NewSessionID generates an opaque session identifier. The identifier is
// held by the client (in a cookie) and maps server-side to the session
// record; it carries no meaning of its own.
func NewSessionID() (string, error) {
	buf := make([]byte, SessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", oops.Code("SESSION_ID_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionIDBytes).
			Wrap(err)
	}
	return hex.EncodeToString(buf), nil
}

// SessionStore manages the server-side session records keyed by opaque
// session identifier. A record holds at most the authenticated user's ID;
// an absent record or absent user ID means "not authenticated".
type SessionStore interface {
	// UserID returns the user ID stored for the session, and whether one
	// is present. An unknown session is not an error.
	UserID(ctx context.Context, sessionID string) (ulid.ULID, bool, error)

	// SetUserID records the authenticated user for the session, creating
	// the record if needed.
	SetUserID(ctx context.Context, sessionID string, userID ulid.ULID) error

	// Clear removes the session record. Clearing an unknown session is
	// not an error.
	Clear(ctx context.Context, sessionID string) error
}
