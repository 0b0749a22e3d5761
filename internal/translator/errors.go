// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translator

import (
	"errors"
	"fmt"
)

// ConfigError reports a setup defect: the provider cannot be called at all.
// Callers must not retry it and must not fall back silently.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("translator: %s is not configured", e.Setting)
}

// ProviderError reports a failed or malformed remote translation call.
type ProviderError struct {
	StatusCode int    // HTTP status, 0 when the request never completed
	Message    string // provider supplied message, if any
	Err        error  // underlying transport or decode error, if any
}

func (e *ProviderError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("translator: provider error (status %d): %s", e.StatusCode, e.Message)
	case e.Message != "":
		return "translator: provider error: " + e.Message
	case e.Err != nil:
		return fmt.Sprintf("translator: provider call failed: %v", e.Err)
	default:
		return fmt.Sprintf("translator: provider error (status %d)", e.StatusCode)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsConfigError reports whether err is, or wraps, a *ConfigError.
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
