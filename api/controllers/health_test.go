package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/angelmondragon/shopfront/pkg/config"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubProber struct{ healthy bool }

func (s stubProber) Health(context.Context) bool { return s.healthy }

func testConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "test"}}
}

func TestHealthLive(t *testing.T) {
	resp := do(HealthLive(testConfig()), http.MethodGet, "/health/live", nil)
	mustStatus(t, resp, http.StatusOK)
	if resp.Header().Get("X-Shopfront-Env") != "test" {
		t.Fatal("expected env header")
	}
}

func TestHealthReadyAllUp(t *testing.T) {
	handler := HealthReady(testConfig(), nil, stubPinger{}, stubProber{healthy: true})
	resp := do(handler, http.MethodGet, "/health/ready", nil)
	mustStatus(t, resp, http.StatusOK)
}

func TestHealthReadyPersistenceDownFails(t *testing.T) {
	handler := HealthReady(testConfig(), nil, stubPinger{err: errors.New("redis down")}, stubProber{healthy: true})
	resp := do(handler, http.MethodGet, "/health/ready", nil)
	mustStatus(t, resp, http.StatusServiceUnavailable)
}

func TestHealthReadyCatalogDegradedStaysReady(t *testing.T) {
	handler := HealthReady(testConfig(), nil, stubPinger{}, stubProber{healthy: false})
	resp := do(handler, http.MethodGet, "/health/ready", nil)
	mustStatus(t, resp, http.StatusOK)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeData(t, resp, &body)
	if body.Checks["catalog"] != "degraded" {
		t.Fatalf("expected degraded catalog check, got %v", body.Checks)
	}
}
