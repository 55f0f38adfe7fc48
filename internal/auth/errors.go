// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package auth

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned by UserRepository.Create when the
	// username uniqueness constraint is violated. Repository
	// implementations translate their provider-specific conflict signal
	// into this sentinel so callers never inspect error text.
	ErrUsernameTaken = errors.New("username already taken")
)
