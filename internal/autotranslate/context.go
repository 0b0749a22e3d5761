package autotranslate

import "context"

type contextKey string

const showOriginalKey contextKey = "autotranslate_show_original"

// WithShowOriginal marks ctx so that resolution returns content untranslated.
func WithShowOriginal(ctx context.Context) context.Context {
	return context.WithValue(ctx, showOriginalKey, true)
}

// ShowOriginal reports whether the caller asked for the original content.
func ShowOriginal(ctx context.Context) bool {
	v, _ := ctx.Value(showOriginalKey).(bool)
	return v
}
