// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// Credentials is the username/password input pair for Register and Login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service provides the credential workflow: Me, Register, Login, Logout.
type Service struct {
	users    UserRepository
	sessions SessionStore
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewService creates a new Service with a no-op logger.
// Returns an error if any required dependency is nil.
func NewService(users UserRepository, sessions SessionStore, hasher PasswordHasher) (*Service, error) {
	if users == nil {
		return nil, oops.Errorf("user repository is required")
	}
	if sessions == nil {
		return nil, oops.Errorf("session store is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   slog.New(slog.DiscardHandler),
	}, nil
}

// NewServiceWithLogger creates a new Service with the provided logger.
// Returns an error if any required dependency is nil.
func NewServiceWithLogger(users UserRepository, sessions SessionStore, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	svc, err := NewService(users, sessions, hasher)
	if err != nil {
		return nil, err
	}
	svc.logger = logger
	return svc, nil
}

// Me returns the user authenticated by the session, or nil if the session
// holds no user. An unset session is answered without touching the user
// store. A user ID that no longer resolves (deleted account) also yields
// nil rather than an error.
func (s *Service) Me(ctx context.Context, sessionID string) (*User, error) {
	if sessionID == "" {
		return nil, nil
	}

	userID, ok, err := s.sessions.UserID(ctx, sessionID)
	if err != nil {
		return nil, oops.Code("AUTH_SESSION_LOOKUP_FAILED").
			With("operation", "get session user id").
			Wrap(err)
	}
	if !ok {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, oops.Code("AUTH_ME_FAILED").
			With("operation", "get user by id").
			With("user_id", userID.String()).
			Wrap(err)
	}

	return user, nil
}

// Register validates the credentials, hashes the password, and persists a
// new user. Rule violations come back inside the Result; only unexpected
// store faults are returned as errors.
//
// Validation is ordered and short-circuits on the first failure: username
// length first, then password length.
func (s *Service) Register(ctx context.Context, creds Credentials) (Result, error) {
	if len(creds.Username) < MinUsernameLength {
		return Failure("username", "length must be greater than 2"), nil
	}
	if len(creds.Password) < MinPasswordLength {
		return Failure("password", "length must be greater than 3"), nil
	}

	hash, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return Result{}, oops.Code("AUTH_HASH_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user, err := NewUser(creds.Username, hash)
	if err != nil {
		return Result{}, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			Wrap(err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return Failure("username", "username already taken"), nil
		}
		return Result{}, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist user").
			With("username", creds.Username).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "user registered",
		"user_id", user.ID.String(),
		"username", user.Username)

	return Success(user), nil
}

// Login authenticates the credentials and, on success, binds the session
// to the user. The distinct unknown-username and wrong-password messages
// are deliberate: they match the product's established behavior, at the
// cost of leaking account existence.
func (s *Service) Login(ctx context.Context, sessionID string, creds Credentials) (Result, error) {
	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Failure("username", "that username does not exist"), nil
		}
		return Result{}, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by username").
			Wrap(err)
	}

	valid, err := s.hasher.Verify(creds.Password, user.PasswordHash)
	if err != nil {
		return Result{}, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			With("user_id", user.ID.String()).
			Wrap(err)
	}
	if !valid {
		return Failure("password", "incorrect password"), nil
	}

	if err := s.sessions.SetUserID(ctx, sessionID, user.ID); err != nil {
		return Result{}, oops.Code("AUTH_SESSION_SET_FAILED").
			With("operation", "set session user id").
			With("user_id", user.ID.String()).
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID.String(),
		"username", user.Username)

	return Success(user), nil
}

// Logout clears the session record. Logging out an anonymous or unknown
// session is a no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return oops.Code("AUTH_LOGOUT_FAILED").
			With("operation", "clear session").
			Wrap(err)
	}
	return nil
}
