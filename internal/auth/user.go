// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Credential length constraints. Registration requires a username longer
// than two characters and a password longer than three.
const (
	MinUsernameLength = 3
	MinPasswordLength = 4
)

// User represents a registered account. The password is held only as a
// one-way digest; the PasswordHash field is never serialized.
type User struct {
	ID           ulid.ULID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser creates a User with a generated ID and creation timestamps.
// The passwordHash must already be a digest; plaintext passwords never
// reach this constructor.
func NewUser(username, passwordHash string) (*User, error) {
	if username == "" {
		return nil, oops.Code("USER_INVALID_USERNAME").Errorf("username cannot be empty")
	}
	if passwordHash == "" {
		return nil, oops.Code("USER_INVALID_HASH").Errorf("password hash cannot be empty")
	}

	now := time.Now()
	return &User{
		ID:           ulid.Make(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user. Returns ErrUsernameTaken if the username
	// is already registered.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound if no user
	// has the given ID.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)

	// GetByUsername retrieves a user by username (case-insensitive).
	// Returns ErrNotFound if no user has the given username.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
