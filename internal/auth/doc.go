// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

// Package auth provides user registration, login, and session primitives
// for Waveboard.
//
// # Domain Types
//
// User values should be created with NewUser, which validates inputs and
// assigns an ID. Direct struct initialization bypasses validation and may
// create invalid state.
//
// Business-rule failures (bad input, unknown username, wrong password,
// duplicate username) are returned inside a Result as FieldError values,
// never as Go errors. Go errors are reserved for infrastructure faults.
//
// # Services
//
// Service coordinates the credential workflow: Me, Register, Login, Logout.
// It is created with NewService, which validates dependencies. Persistence,
// hashing, and session storage are injected through the UserRepository,
// PasswordHasher, and SessionStore interfaces.
package auth
