// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package autotranslate

import (
	"context"
	"fmt"

	"github.com/olegiv/ocms-translate/internal/hooks"
	"github.com/olegiv/ocms-translate/internal/model"
)

// RegisterHooks subscribes the engine to content save events.
func (e *Engine) RegisterHooks(r *hooks.Registry) {
	r.Register(hooks.HookContentAfterSave, hooks.Handler{
		Name: "autotranslate.invalidate",
		Fn: func(ctx context.Context, data any) error {
			switch ev := data.(type) {
			case model.SaveEvent:
				return e.HandleContentSaved(ctx, ev)
			case *model.SaveEvent:
				return e.HandleContentSaved(ctx, *ev)
			default:
				return fmt.Errorf("unexpected %s payload %T", hooks.HookContentAfterSave, data)
			}
		},
	})
}
