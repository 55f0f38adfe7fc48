// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveboard/waveboard/internal/auth"
)

func TestNewSessionID(t *testing.T) {
	t.Run("produces a 64 character hex identifier", func(t *testing.T) {
		id, err := auth.NewSessionID()
		require.NoError(t, err)
		assert.Len(t, id, auth.SessionIDBytes*2)
		assert.Regexp(t, "^[0-9a-f]+$", id)
	})

	t.Run("identifiers are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			id, err := auth.NewSessionID()
			require.NoError(t, err)
			assert.False(t, seen[id], "duplicate session ID generated")
			seen[id] = true
		}
	})
}
