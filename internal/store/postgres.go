// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

// Package store provides database connection and schema management.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Connection retry policy for startup. The database may still be coming
// up when the service starts.
const (
	pingRetryBase = 500 * time.Millisecond
	pingRetryMax  = 5
)

// NewPool creates a pgx connection pool and verifies connectivity with a
// retried ping.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("STORE_CONNECT_FAILED").
			With("operation", "create connection pool").
			Wrap(err)
	}

	backoff := retry.WithMaxRetries(pingRetryMax, retry.NewExponential(pingRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("STORE_PING_FAILED").
			With("operation", "ping database").
			Wrap(err)
	}

	return pool, nil
}
