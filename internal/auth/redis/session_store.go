// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

// Package redis provides a Redis-backed implementation of auth.SessionStore.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"

	"github.com/waveboard/waveboard/internal/auth"
)

// keyPrefix namespaces session records in the shared Redis keyspace.
const keyPrefix = "session:"

// SessionStore implements auth.SessionStore using Redis. Each session is a
// single key holding the authenticated user's ID, expiring after the
// configured TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a new SessionStore. If ttl is zero,
// auth.DefaultSessionTTL is used.
func NewSessionStore(client *redis.Client, ttl time.Duration) (*SessionStore, error) {
	if client == nil {
		return nil, oops.Errorf("redis client is required")
	}
	if ttl <= 0 {
		ttl = auth.DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}, nil
}

// UserID returns the user ID stored for the session. An absent session is
// reported as (zero, false, nil), not as an error.
func (s *SessionStore) UserID(ctx context.Context, sessionID string) (ulid.ULID, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ulid.ULID{}, false, nil
		}
		return ulid.ULID{}, false, oops.Code("SESSION_GET_FAILED").
			With("operation", "get session").
			Wrap(err)
	}

	id, err := ulid.Parse(val)
	if err != nil {
		return ulid.ULID{}, false, oops.Code("SESSION_INVALID_USER_ID").
			With("operation", "parse session user id").
			With("user_id", val).
			Wrap(err)
	}

	return id, true, nil
}

// SetUserID records the authenticated user for the session and refreshes
// its expiry.
func (s *SessionStore) SetUserID(ctx context.Context, sessionID string, userID ulid.ULID) error {
	if sessionID == "" {
		return oops.Code("SESSION_ID_EMPTY").Errorf("session ID cannot be empty")
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, userID.String(), s.ttl).Err(); err != nil {
		return oops.Code("SESSION_SET_FAILED").
			With("operation", "set session user id").
			Wrap(err)
	}
	return nil
}

// Clear removes the session record. Clearing an unknown session is a no-op.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return oops.Code("SESSION_CLEAR_FAILED").
			With("operation", "delete session").
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ auth.SessionStore = (*SessionStore)(nil)
