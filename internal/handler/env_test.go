package handler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-translate/internal/autotranslate"
	"github.com/olegiv/ocms-translate/internal/filters"
	"github.com/olegiv/ocms-translate/internal/hooks"
	"github.com/olegiv/ocms-translate/internal/middleware"
	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/store"
	"github.com/olegiv/ocms-translate/internal/testutil"
	"github.com/olegiv/ocms-translate/internal/translator"
	"github.com/olegiv/ocms-translate/internal/version"
)

func testLogger() *slog.Logger { return testutil.TestLogger() }

func testDB(t *testing.T) *sql.DB { return testutil.TestDB(t) }

// testEnv is the full service stack over a temp database and a fake
// translation provider that prefixes text with "[target] ".
type testEnv struct {
	db       *sql.DB
	registry *store.Registry
	engine   *autotranslate.Engine
	health   *HealthHandler
	router   http.Handler
	calls    *atomic.Int32
}

type envOptions struct {
	apiKey    string
	rateLimit float64
}

// newTestEnv seeds English (default) and French, an English post origin (1)
// and its French duplicate (2).
func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	ctx := context.Background()
	db := testDB(t)

	calls := &atomic.Int32{}
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = r.ParseForm()
		text := "[" + r.PostForm.Get("target") + "] " + r.PostForm.Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":{"translations":[{"translatedText":"`+text+`"}]}}`)
	}))
	t.Cleanup(provider.Close)

	fixture := testutil.SeedFixture(t, db, middleware.LanguageCodeFromContext)
	registry, settings := fixture.Registry, fixture.Settings
	require.NoError(t, settings.SetField(ctx, "post", model.Field{
		Key: "subtitle", Kind: model.FieldKindText, AutoTranslate: true,
	}))

	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = "test-key"
	}
	if apiKey == "-" {
		apiKey = ""
	}
	client := translator.New(translator.Options{APIKey: apiKey, Endpoint: provider.URL})

	logger := testLogger()
	engine := autotranslate.New(autotranslate.Options{
		Store:           store.NewMetaStore(db),
		Registry:        registry,
		Settings:        settings,
		Corrections:     store.NewCorrections(db),
		Translator:      client,
		Logger:          logger,
		DefaultLanguage: "en",
	})
	hookRegistry := hooks.NewRegistry(logger)
	engine.RegisterHooks(hookRegistry)

	health := NewHealthHandler(HealthOptions{
		DB:                   db,
		Stats:                engine,
		Version:              version.Info{Version: "test"},
		TranslatorConfigured: client.Configured(),
	})
	api := NewAPIHandler(engine, filters.New(engine, settings, registry, logger), registry, hookRegistry, logger)

	return &testEnv{
		db:       db,
		registry: registry,
		engine:   engine,
		health:   health,
		calls:    calls,
		router: NewRouter(RouterOptions{
			API:       api,
			Health:    health,
			Languages: registry,
			Logger:    logger,
			RateLimit: opts.rateLimit,
			RateBurst: 1,
		}),
	}
}

// do sends a request through the router. header pairs are name, value.
func (e *testEnv) do(method, path, body string, header ...string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		r.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}
