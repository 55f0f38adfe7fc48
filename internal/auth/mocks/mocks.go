// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

// Package mocks provides testify mocks for the auth package interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/mock"

	"github.com/waveboard/waveboard/internal/auth"
)

// MockUserRepository is a mock implementation of auth.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a MockUserRepository that asserts its
// expectations when the test finishes.
func NewMockUserRepository(t *testing.T) *MockUserRepository {
	t.Helper()
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	args := m.Called(ctx, id)
	var user *auth.User
	if v := args.Get(0); v != nil {
		user = v.(*auth.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	args := m.Called(ctx, username)
	var user *auth.User
	if v := args.Get(0); v != nil {
		user = v.(*auth.User)
	}
	return user, args.Error(1)
}

// MockSessionStore is a mock implementation of auth.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

// NewMockSessionStore creates a MockSessionStore that asserts its
// expectations when the test finishes.
func NewMockSessionStore(t *testing.T) *MockSessionStore {
	t.Helper()
	m := &MockSessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionStore) UserID(ctx context.Context, sessionID string) (ulid.ULID, bool, error) {
	args := m.Called(ctx, sessionID)
	var id ulid.ULID
	if v := args.Get(0); v != nil {
		id = v.(ulid.ULID)
	}
	return id, args.Bool(1), args.Error(2)
}

func (m *MockSessionStore) SetUserID(ctx context.Context, sessionID string, userID ulid.ULID) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of auth.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a MockPasswordHasher that asserts its
// expectations when the test finishes.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	t.Helper()
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(password, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

// Compile-time interface checks.
var (
	_ auth.UserRepository = (*MockUserRepository)(nil)
	_ auth.SessionStore   = (*MockSessionStore)(nil)
	_ auth.PasswordHasher = (*MockPasswordHasher)(nil)
)
