// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/waveboard/waveboard/internal/auth"
	authpostgres "github.com/waveboard/waveboard/internal/auth/postgres"
	authredis "github.com/waveboard/waveboard/internal/auth/redis"
	"github.com/waveboard/waveboard/internal/config"
	"github.com/waveboard/waveboard/internal/httpapi"
	"github.com/waveboard/waveboard/internal/logging"
	"github.com/waveboard/waveboard/internal/observability"
	"github.com/waveboard/waveboard/internal/store"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the auth API server",
		Long: `Start the Waveboard auth API server: registration, login, and
session endpoints, plus a metrics/health listener.`,
		RunE: runServe,
	}

	flags := cmd.Flags()
	flags.String("http.addr", ":8080", "API listen address")
	flags.String("metrics.addr", "127.0.0.1:9100", "metrics/health HTTP address (empty = disabled)")
	flags.String("database.url", "", "PostgreSQL connection URL")
	flags.String("redis.addr", "localhost:6379", "Redis address for session storage")
	flags.String("log.format", "json", "log format (json or text)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("waveboard", version, cfg.Log.Format)
	logger := slog.Default()

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	pool, err := store.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return oops.Code("REDIS_CONNECT_FAILED").
			With("addr", cfg.Redis.Addr).
			Wrap(err)
	}
	defer func() { _ = redisClient.Close() }()

	users := authpostgres.NewUserRepository(pool)
	sessions, err := authredis.NewSessionStore(redisClient, cfg.Session.TTL)
	if err != nil {
		return err
	}
	svc, err := auth.NewServiceWithLogger(users, sessions, auth.NewArgon2idHasher(), logger)
	if err != nil {
		return err
	}

	var ready atomic.Bool

	// Observability server is optional; an empty address disables it.
	var metrics *observability.Metrics
	var obsSrv *observability.Server
	var obsErrCh <-chan error
	if cfg.Metrics.Addr != "" {
		obsSrv = observability.NewServer(cfg.Metrics.Addr, ready.Load)
		obsErrCh, err = obsSrv.Start()
		if err != nil {
			return err
		}
		metrics = obsSrv.Metrics()
	}

	handler, err := httpapi.NewHandlerWithLogger(svc, httpapi.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
	}, metrics, logger)
	if err != nil {
		return err
	}

	apiSrv := httpapi.NewServer(cfg.HTTP.Addr, handler.Routes(), logger)
	apiErrCh, err := apiSrv.Start()
	if err != nil {
		return err
	}

	ready.Store(true)
	logger.Info("waveboard serving", "http_addr", apiSrv.Addr(), "metrics_addr", cfg.Metrics.Addr)

	// Block until a shutdown signal or a server failure. A nil error
	// channel never fires, so a disabled observability server is inert.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr := <-apiErrCh:
		if serveErr != nil {
			return oops.Code("API_SERVER_FAILED").Wrap(serveErr)
		}
	case serveErr := <-obsErrCh:
		if serveErr != nil {
			return oops.Code("OBSERVABILITY_SERVER_FAILED").Wrap(serveErr)
		}
	}

	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := apiSrv.Stop(shutdownCtx); err != nil {
		return err
	}
	if obsSrv != nil {
		if err := obsSrv.Stop(shutdownCtx); err != nil {
			return err
		}
	}

	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
