// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic housekeeping for the service.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/ocms-translate/internal/model"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// ValidateSchedule checks a standard five-field cron expression or a
// descriptor such as "@daily".
func ValidateSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Add registers job under name. Failures are logged and do not stop later runs.
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(context.Background()); err != nil {
			s.logger.Error("scheduled job failed",
				"category", model.EventCategorySystem,
				"job", name,
				"error", err,
			)
			return
		}
		s.logger.Debug("scheduled job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	return nil
}

// Start begins running the registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// EventPruner deletes old event log rows. store.Events implements it.
type EventPruner interface {
	DeleteEventsBefore(ctx context.Context, t time.Time) (int64, error)
}

// PruneEvents returns a job that deletes events older than retention.
func PruneEvents(events EventPruner, retention time.Duration, logger *slog.Logger) Job {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context) error {
		n, err := events.DeleteEventsBefore(ctx, time.Now().Add(-retention))
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("pruned event log", "deleted", n, "retention", retention)
		}
		return nil
	}
}
