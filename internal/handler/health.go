// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/ocms-translate/internal/autotranslate"
	"github.com/olegiv/ocms-translate/internal/version"
)

// checkTimeout bounds each dependency probe.
const checkTimeout = 2 * time.Second

// Pinger is a dependency that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsSource exposes engine counters.
type StatsSource interface {
	Stats() autotranslate.Stats
}

// HealthOptions configures a HealthHandler.
type HealthOptions struct {
	DB                   *sql.DB
	Cache                Pinger // nil when the cache lives in the database
	Stats                StatsSource
	Version              version.Info
	TranslatorConfigured bool
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         *sql.DB
	cache      Pinger
	stats      StatsSource
	version    version.Info
	translator bool
	startTime  time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(opts HealthOptions) *HealthHandler {
	return &HealthHandler{
		db:         opts.DB,
		cache:      opts.Cache,
		stats:      opts.Stats,
		version:    opts.Version,
		translator: opts.TranslatorConfigured,
		startTime:  time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string               `json:"status"`
	Timestamp time.Time            `json:"timestamp"`
	Uptime    string               `json:"uptime"`
	Version   version.Info         `json:"version"`
	Checks    map[string]Check     `json:"checks"`
	Stats     *autotranslate.Stats `json:"stats,omitempty"`
	System    *SystemInfo          `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests.
// A missing translator key degrades the status without failing it: content
// is still served, untranslated.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database":   h.checkDatabase(r.Context()),
		"translator": h.checkTranslator(),
	}
	if h.cache != nil {
		checks["cache"] = h.checkCache(r.Context())
	}

	overallStatus := "healthy"
	for _, c := range checks {
		if c.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
		if c.Status == "degraded" {
			overallStatus = "degraded"
		}
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
	if h.stats != nil {
		s := h.stats.Stats()
		status.Stats = &s
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	w.Header().Set("Content-Type", "application/json")
	if overallStatus == "unhealthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready - checks if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	ready := dbCheck.Status == "healthy"
	message := dbCheck.Message

	if ready && h.cache != nil {
		if cacheCheck := h.checkCache(r.Context()); cacheCheck.Status != "healthy" {
			ready = false
			message = cacheCheck.Message
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if ready {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
		})
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "not_ready",
		"message": message,
	})
}

// checkDatabase verifies database connectivity.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{Status: "unhealthy", Message: "database not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return timedCheck(func() error { return h.db.PingContext(ctx) }, "Connected")
}

// checkCache verifies the external cache backend.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return timedCheck(func() error { return h.cache.Ping(ctx) }, "Connected")
}

func (h *HealthHandler) checkTranslator() Check {
	if !h.translator {
		return Check{Status: "degraded", Message: "API key not configured"}
	}
	return Check{Status: "healthy", Message: "Configured"}
}

func timedCheck(probe func() error, okMessage string) Check {
	start := time.Now()
	err := probe()
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{
		Status:  "healthy",
		Message: okMessage,
		Latency: latency.String(),
	}
}

// getSystemInfo returns system-level metrics.
func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
