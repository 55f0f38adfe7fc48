package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestServer_Metrics(t *testing.T) {
	// Create server with always-ready checker
	server := NewServer("127.0.0.1:0", func() bool { return true })

	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	addr := server.Addr()
	if addr == "" {
		t.Fatal("server address is empty")
	}

	// Make request to /metrics
	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("failed to GET /metrics: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	// Check for Prometheus format indicators
	bodyStr := string(body)
	if !strings.Contains(bodyStr, "# HELP") {
		t.Error("expected Prometheus format with HELP comments")
	}
	if !strings.Contains(bodyStr, "# TYPE") {
		t.Error("expected Prometheus format with TYPE comments")
	}

	// Check for standard Go metrics
	if !strings.Contains(bodyStr, "go_") {
		t.Error("expected go_* metrics")
	}

	// Check for process metrics
	if !strings.Contains(bodyStr, "process_") {
		t.Error("expected process_* metrics")
	}

	// Increment custom metrics so they appear in output
	metrics := server.Metrics()
	metrics.RegistrationsTotal.WithLabelValues(OutcomeSuccess).Inc()
	metrics.LoginsTotal.WithLabelValues(OutcomeRejected).Inc()
	metrics.LoginsTotal.WithLabelValues(OutcomeRejected).Inc()

	// Make another request to see the custom metrics
	resp2, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("failed to GET /metrics (second request): %v", err)
	}
	defer func() { _ = resp2.Body.Close() }()

	body2, err := io.ReadAll(resp2.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	bodyStr2 := string(body2)
	if !strings.Contains(bodyStr2, `waveboard_registrations_total{status="success"} 1`) {
		t.Error("expected waveboard_registrations_total counter value")
	}
	if !strings.Contains(bodyStr2, `waveboard_logins_total{status="rejected"} 2`) {
		t.Error("expected waveboard_logins_total counter value")
	}
}

func TestServer_Liveness(t *testing.T) {
	server := NewServer("127.0.0.1:0", func() bool { return true })

	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	resp, err := http.Get("http://" + server.Addr() + "/healthz/liveness")
	if err != nil {
		t.Fatalf("failed to GET /healthz/liveness: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestServer_Readiness(t *testing.T) {
	ready := false
	server := NewServer("127.0.0.1:0", func() bool { return ready })

	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	url := "http://" + server.Addr() + "/healthz/readiness"

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("failed to GET /healthz/readiness: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 before ready, got %d", resp.StatusCode)
	}

	ready = true

	resp2, err := http.Get(url)
	if err != nil {
		t.Fatalf("failed to GET /healthz/readiness: %v", err)
	}
	_ = resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 when ready, got %d", resp2.StatusCode)
	}
}

func TestServer_StartTwice(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	if _, err := server.Start(); err == nil {
		t.Error("expected error starting an already-running server")
	}
}

func TestServer_StopWhenNotRunning(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Errorf("stopping a non-running server should be a no-op, got %v", err)
	}
}
