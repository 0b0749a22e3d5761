// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hooks dispatches named content events to registered handlers.
package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/olegiv/ocms-translate/internal/model"
)

// Predefined hook names.
const (
	// HookContentAfterSave fires after the host saved a content item or one of
	// its revisions. Data is a model.SaveEvent.
	HookContentAfterSave = "content.after_save"
)

// HookFunc handles a hook call. Handlers that save content themselves must
// pass ctx along so nested calls of the same hook are suppressed.
type HookFunc func(ctx context.Context, data any) error

// Handler wraps a HookFunc with metadata.
type Handler struct {
	Name     string   // Name of the handler for debugging
	Priority int      // Lower priority runs first (default: 0)
	Fn       HookFunc // The actual handler function
}

// Registry manages hook registration and execution.
type Registry struct {
	hooks  map[string][]Handler
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewRegistry creates a new hook registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		hooks:  make(map[string][]Handler),
		logger: logger,
	}
}

// Register adds a handler for the given hook name.
func (r *Registry) Register(hookName string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Copy so running Calls keep iterating their own snapshot.
	existing := r.hooks[hookName]
	handlers := make([]Handler, 0, len(existing)+1)
	handlers = append(handlers, existing...)
	handlers = append(handlers, handler)
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority < handlers[j].Priority
	})
	r.hooks[hookName] = handlers

	r.logger.Debug("hook registered",
		"hook", hookName,
		"handler", handler.Name,
		"priority", handler.Priority,
	)
}

// RegisterFunc registers fn with default priority.
func (r *Registry) RegisterFunc(hookName, handlerName string, fn HookFunc) {
	r.Register(hookName, Handler{Name: handlerName, Fn: fn})
}

// Call executes all handlers for hookName in priority order, stopping at the
// first error. A Call made from inside a handler of the same hook, with the
// context that handler received, is a no-op.
func (r *Registry) Call(ctx context.Context, hookName string, data any) error {
	if InProgress(ctx, hookName) {
		r.logger.Debug("suppressing reentrant hook call", "hook", hookName)
		return nil
	}

	r.mu.RLock()
	handlers := r.hooks[hookName]
	r.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	ctx = markInProgress(ctx, hookName)
	for _, handler := range handlers {
		if err := handler.Fn(ctx, data); err != nil {
			r.logger.Error("hook handler error",
				"category", model.EventCategoryHooks,
				"hook", hookName,
				"handler", handler.Name,
				"error", err,
			)
			return fmt.Errorf("hook %s handler %s: %w", hookName, handler.Name, err)
		}
	}
	return nil
}

// HandlerCount returns the number of handlers registered for a hook.
func (r *Registry) HandlerCount(hookName string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[hookName])
}

type inProgressKey struct{}

// markInProgress returns a context that records hookName as running.
func markInProgress(ctx context.Context, hookName string) context.Context {
	prev, _ := ctx.Value(inProgressKey{}).(map[string]bool)
	next := make(map[string]bool, len(prev)+1)
	for k, v := range prev {
		next[k] = v
	}
	next[hookName] = true
	return context.WithValue(ctx, inProgressKey{}, next)
}

// InProgress reports whether hookName is already running in this call chain.
func InProgress(ctx context.Context, hookName string) bool {
	running, _ := ctx.Value(inProgressKey{}).(map[string]bool)
	return running[hookName]
}
