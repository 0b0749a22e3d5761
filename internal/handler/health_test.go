// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/ocms-translate/internal/version"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func decodeHealth(t *testing.T, w *httptest.ResponseRecorder) HealthStatus {
	t.Helper()
	var status HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return status
}

func TestHealthHandler_Health(t *testing.T) {
	env := newTestEnv(t, envOptions{})

	w := env.do(http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	status := decodeHealth(t, w)
	if status.Status != "healthy" {
		t.Errorf("status = %q, want healthy", status.Status)
	}
	if status.Version.Version != "test" {
		t.Errorf("version = %q, want test", status.Version.Version)
	}
	if status.Checks["database"].Status != "healthy" {
		t.Errorf("database check = %+v", status.Checks["database"])
	}
	if status.Checks["translator"].Status != "healthy" {
		t.Errorf("translator check = %+v", status.Checks["translator"])
	}
	if _, ok := status.Checks["cache"]; ok {
		t.Error("cache check should be absent without an external cache")
	}
	if status.Stats == nil {
		t.Error("expected engine stats")
	}
	if status.System != nil {
		t.Error("system info should only appear in verbose mode")
	}
}

func TestHealthHandler_Health_Verbose(t *testing.T) {
	h := NewHealthHandler(HealthOptions{DB: testDB(t), TranslatorConfigured: true})

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health?verbose=true", nil))

	status := decodeHealth(t, w)
	if status.System == nil {
		t.Fatal("expected system info")
	}
	if status.System.NumCPU <= 0 {
		t.Errorf("NumCPU = %d", status.System.NumCPU)
	}
	if status.Stats != nil {
		t.Error("stats should be absent without a stats source")
	}
}

func TestHealthHandler_Health_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		closeDB    bool
		cache      Pinger
		translator bool
		wantCode   int
		wantStatus string
	}{
		{name: "all healthy", cache: stubPinger{}, translator: true, wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "no translator key", translator: false, wantCode: http.StatusOK, wantStatus: "degraded"},
		{name: "cache down", cache: stubPinger{err: errors.New("connection refused")}, translator: true, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
		{name: "database closed", closeDB: true, translator: true, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			if tt.closeDB {
				_ = db.Close()
			}
			h := NewHealthHandler(HealthOptions{DB: db, Cache: tt.cache, TranslatorConfigured: tt.translator})

			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.wantCode)
			}
			if got := decodeHealth(t, w).Status; got != tt.wantStatus {
				t.Errorf("status = %q, want %q", got, tt.wantStatus)
			}
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(HealthOptions{})

	w := httptest.NewRecorder()
	h.Liveness(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["status"] != "alive" {
		t.Errorf("status = %q, want alive", resp["status"])
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		closeDB    bool
		cache      Pinger
		wantCode   int
		wantStatus string
	}{
		{name: "ready", wantCode: http.StatusOK, wantStatus: "ready"},
		{name: "ready with cache", cache: stubPinger{}, wantCode: http.StatusOK, wantStatus: "ready"},
		{name: "database closed", closeDB: true, wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready"},
		{name: "cache down", cache: stubPinger{err: errors.New("timeout")}, wantCode: http.StatusServiceUnavailable, wantStatus: "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testDB(t)
			if tt.closeDB {
				_ = db.Close()
			}
			h := NewHealthHandler(HealthOptions{DB: db, Cache: tt.cache})

			w := httptest.NewRecorder()
			h.Readiness(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if w.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", w.Code, tt.wantCode)
			}
			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if resp["status"] != tt.wantStatus {
				t.Errorf("status = %q, want %q", resp["status"], tt.wantStatus)
			}
			if tt.wantCode != http.StatusOK && resp["message"] == "" {
				t.Error("expected a failure message")
			}
		})
	}
}

func TestHealthHandler_NilDatabase(t *testing.T) {
	h := NewHealthHandler(HealthOptions{Version: version.Info{Version: "1.2.3"}})

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestHealthHandler_StartTime(t *testing.T) {
	before := time.Now()
	h := NewHealthHandler(HealthOptions{})
	if h.StartTime().Before(before) || h.StartTime().After(time.Now()) {
		t.Errorf("StartTime() = %v, outside construction window", h.StartTime())
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{1572864, "1.50 MB"},
		{1073741824, "1.00 GB"},
		{1610612736, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q; want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
