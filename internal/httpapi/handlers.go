// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Waveboard Contributors

// Package httpapi exposes the auth operations as a JSON HTTP API with
// cookie-based sessions.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/oops"

	"github.com/waveboard/waveboard/internal/auth"
	"github.com/waveboard/waveboard/internal/observability"
	"github.com/waveboard/waveboard/pkg/errutil"
)

// AuthService defines the authentication operations needed by the HTTP
// handlers.
type AuthService interface {
	// Me returns the user bound to the session, or nil if anonymous.
	Me(ctx context.Context, sessionID string) (*auth.User, error)

	// Register validates and persists a new user.
	Register(ctx context.Context, creds auth.Credentials) (auth.Result, error)

	// Login authenticates and binds the session to the user.
	Login(ctx context.Context, sessionID string, creds auth.Credentials) (auth.Result, error)

	// Logout clears the session.
	Logout(ctx context.Context, sessionID string) error
}

// CookieConfig describes the session cookie the handler issues.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Handler serves the auth API endpoints.
type Handler struct {
	svc     AuthService
	cookie  CookieConfig
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewHandler creates a Handler with a no-op logger. Metrics may be nil.
func NewHandler(svc AuthService, cookie CookieConfig, metrics *observability.Metrics) (*Handler, error) {
	if svc == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if cookie.Name == "" {
		return nil, oops.Errorf("cookie name is required")
	}
	if cookie.TTL <= 0 {
		cookie.TTL = auth.DefaultSessionTTL
	}
	return &Handler{
		svc:     svc,
		cookie:  cookie,
		metrics: metrics,
		logger:  slog.New(slog.DiscardHandler),
	}, nil
}

// NewHandlerWithLogger creates a Handler with the provided logger.
func NewHandlerWithLogger(svc AuthService, cookie CookieConfig, metrics *observability.Metrics, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	h, err := NewHandler(svc, cookie, metrics)
	if err != nil {
		return nil, err
	}
	h.logger = logger
	return h, nil
}

// Routes returns the API route mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/me", h.handleMe)
	mux.HandleFunc("POST /api/register", h.handleRegister)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
	return mux
}

// userEnvelope always carries the user key so clients receive an explicit
// null when anonymous.
type userEnvelope struct {
	User *auth.User `json:"user"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(r.Context(), h.sessionID(r))
	if err != nil {
		h.internalError(w, r, "me failed", err)
		return
	}
	h.writeJSON(w, http.StatusOK, userEnvelope{User: user})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Register(r.Context(), creds)
	if err != nil {
		h.recordRegistration(observability.OutcomeError)
		h.internalError(w, r, "register failed", err)
		return
	}

	if result.OK() {
		h.recordRegistration(observability.OutcomeSuccess)
	} else {
		h.recordRegistration(observability.OutcomeRejected)
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	sessionID, err := h.ensureSession(w, r)
	if err != nil {
		h.recordLogin(observability.OutcomeError)
		h.internalError(w, r, "login failed", err)
		return
	}

	result, err := h.svc.Login(r.Context(), sessionID, creds)
	if err != nil {
		h.recordLogin(observability.OutcomeError)
		h.internalError(w, r, "login failed", err)
		return
	}

	if result.OK() {
		h.recordLogin(observability.OutcomeSuccess)
	} else {
		h.recordLogin(observability.OutcomeRejected)
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context(), h.sessionID(r)); err != nil {
		h.internalError(w, r, "logout failed", err)
		return
	}
	h.expireCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// sessionID returns the opaque session identifier from the request cookie,
// or empty if the client has none yet.
func (h *Handler) sessionID(r *http.Request) string {
	c, err := r.Cookie(h.cookie.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

// ensureSession returns the request's session identifier, generating one
// and setting the cookie when the client arrives without it. Sessions are
// created implicitly on first interaction.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) (string, error) {
	if id := h.sessionID(r); id != "" {
		return id, nil
	}

	id, err := auth.NewSessionID()
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// expireCookie tells the client to drop the session cookie.
func (h *Handler) expireCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (auth.Credentials, bool) {
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return auth.Credentials{}, false
	}
	return creds, true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// internalError answers an unclassified fault with an opaque failure and
// no field attribution. The cause is logged, never sent to the client.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	errutil.LogError(h.logger.With("method", r.Method, "path", r.URL.Path), msg, err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func (h *Handler) recordRegistration(status string) {
	if h.metrics != nil {
		h.metrics.RegistrationsTotal.WithLabelValues(status).Inc()
	}
}

func (h *Handler) recordLogin(status string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}
