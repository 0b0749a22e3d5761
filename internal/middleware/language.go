// Package middleware provides HTTP middleware for request language detection
// and request time limits.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"

	"github.com/olegiv/ocms-translate/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for language data.
const (
	ContextKeyLanguage     ContextKey = "language"
	ContextKeyLanguageCode ContextKey = "language_code"
)

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "ocms_lang"

// LanguageSource lists configured languages. store.Registry implements it.
type LanguageSource interface {
	Languages(ctx context.Context) ([]model.Language, error)
}

// Language creates middleware that detects the request language.
// Priority order:
// 1. Query parameter ?lang=XX (explicit switch, updates cookie)
// 2. URL parameter {lang} from chi router (e.g. /fr/api/v1/resolve)
// 3. Cookie preference
// 4. Accept-Language header
// 5. Default language
//
// Only active languages are accepted. Without any configured language the
// request proceeds without language context.
func Language(source LanguageSource, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			langs, err := source.Languages(ctx)
			if err != nil {
				logger.Warn("loading languages failed", "category", model.EventCategorySystem, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			var (
				def    *model.Language
				active []model.Language
				byCode = make(map[string]model.Language)
			)
			for i := range langs {
				if langs[i].IsDefault {
					def = &langs[i]
				}
				if langs[i].IsActive {
					active = append(active, langs[i])
					byCode[strings.ToLower(langs[i].Code)] = langs[i]
				}
			}

			if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" {
				if lang, ok := byCode[q]; ok {
					SetLanguageCookie(w, lang.Code)
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
					return
				}
			}

			if p := strings.ToLower(chi.URLParam(r, "lang")); p != "" {
				if lang, ok := byCode[p]; ok {
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
					return
				}
			}

			if cookie, err := r.Cookie(LanguageCookieName); err == nil {
				if lang, ok := byCode[strings.ToLower(cookie.Value)]; ok {
					next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, lang)))
					return
				}
			}

			if lang := matchAcceptLanguage(r.Header.Get("Accept-Language"), active); lang != nil {
				next.ServeHTTP(w, r.WithContext(setLanguageContext(ctx, *lang)))
				return
			}

			if def != nil {
				ctx = setLanguageContext(ctx, *def)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// matchAcceptLanguage picks the best active language for an Accept-Language
// header, honouring quality values. Returns nil when nothing matches.
func matchAcceptLanguage(header string, active []model.Language) *model.Language {
	if strings.TrimSpace(header) == "" || len(active) == 0 {
		return nil
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return nil
	}

	var (
		tags  []language.Tag
		index []int
	)
	for i, l := range active {
		tag, err := language.Parse(l.Code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		index = append(index, i)
	}
	if len(tags) == 0 {
		return nil
	}

	_, i, conf := language.NewMatcher(tags).Match(desired...)
	if conf == language.No {
		return nil
	}
	return &active[index[i]]
}

func setLanguageContext(ctx context.Context, lang model.Language) context.Context {
	ctx = context.WithValue(ctx, ContextKeyLanguage, lang)
	return WithLanguageCode(ctx, lang.Code)
}

// WithLanguageCode returns a context carrying code as the request language.
func WithLanguageCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, ContextKeyLanguageCode, code)
}

// LanguageCodeFromContext returns the request language code, or "".
func LanguageCodeFromContext(ctx context.Context) string {
	code, _ := ctx.Value(ContextKeyLanguageCode).(string)
	return code
}

// GetLanguage retrieves the current language from the request context.
// Returns nil if no language is in context.
func GetLanguage(r *http.Request) *model.Language {
	lang, ok := r.Context().Value(ContextKeyLanguage).(model.Language)
	if !ok {
		return nil
	}
	return &lang
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, langCode string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    langCode,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
