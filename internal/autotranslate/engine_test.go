package autotranslate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-translate/internal/model"
	"github.com/olegiv/ocms-translate/internal/translator"
)

type fixture struct {
	store       *fakeStore
	registry    *fakeRegistry
	settings    *fakeSettings
	corrections *fakeCorrections
	translator  *fakeTranslator
	engine      *Engine

	origin  *model.ContentItem
	variant *model.ContentItem
	other   *model.ContentItem
}

// newFixture builds an engine with an English origin (7) and its French
// duplicate (42), plus an unrelated French duplicate (43 of 8), viewed in French.
func newFixture(t *testing.T, tr *fakeTranslator) *fixture {
	t.Helper()

	f := &fixture{
		store:       newFakeStore(),
		settings:    &fakeSettings{types: map[string]model.SyncSetting{"post": model.SyncAuto, "page": model.SyncManual}},
		corrections: &fakeCorrections{},
		translator:  tr,
		origin:      &model.ContentItem{ID: 7, ContentType: "post", Language: "en"},
		variant:     &model.ContentItem{ID: 42, ContentType: "post", Language: "fr", OriginID: 7},
		other:       &model.ContentItem{ID: 43, ContentType: "post", Language: "fr", OriginID: 8},
	}
	f.registry = newFakeRegistry("fr",
		f.origin,
		f.variant,
		f.other,
		&model.ContentItem{ID: 8, ContentType: "post", Language: "en"},
	)
	f.engine = New(Options{
		Store:       f.store,
		Registry:    f.registry,
		Settings:    f.settings,
		Corrections: f.corrections,
		Translator:  f.translator,
		Logger:      silentLogger(),
	})
	return f
}

func TestResolve_TranslatesAndCaches(t *testing.T) {
	f := newFixture(t, translateTo("Bonjour le Monde"))
	ctx := context.Background()

	got, err := f.engine.Resolve(ctx, "Hello World", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour le Monde", got)
	assert.EqualValues(t, 1, f.translator.calls.Load())

	cached, ok := f.store.metaValue(42, Key("en", "fr", model.FieldTitle))
	require.True(t, ok, "cache entry should exist after a successful translation")
	assert.Equal(t, "Bonjour le Monde", cached)

	got, err = f.engine.Resolve(ctx, "Hello World", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour le Monde", got)
	assert.EqualValues(t, 1, f.translator.calls.Load(), "second call must be served from cache")

	stats := f.engine.Stats()
	assert.EqualValues(t, 1, stats.CacheHits)
	assert.EqualValues(t, 1, stats.CacheMisses)
	assert.EqualValues(t, 1, stats.RemoteCalls)
}

func TestResolve_CorrectionWinsOverCache(t *testing.T) {
	f := newFixture(t, translateTo("Bonjour le Monde"))
	ctx := context.Background()

	require.NoError(t, f.store.SetItemMeta(ctx, 42, Key("en", "fr", model.FieldTitle), "stale"))
	f.corrections.entries = []model.Correction{
		{SourceText: "Something else", CorrectedText: "Autre chose"},
		{SourceText: "  HELLO world ", CorrectedText: "Bonjour tout le monde"},
		{SourceText: "hello world", CorrectedText: "second match is ignored"},
	}
	writesBefore := f.store.writes.Load()

	got, err := f.engine.Resolve(ctx, "Hello World", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour tout le monde", got)
	assert.Zero(t, f.translator.calls.Load())
	assert.Equal(t, writesBefore, f.store.writes.Load(), "corrections are never written to the cache")

	cached, _ := f.store.metaValue(42, Key("en", "fr", model.FieldTitle))
	assert.Equal(t, "stale", cached)
}

func TestResolve_OriginShortCircuits(t *testing.T) {
	f := newFixture(t, translateTo("unused"))

	got, err := f.engine.Resolve(context.Background(), "Hello World", f.origin, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)
	assert.Zero(t, f.store.reads.Load())
	assert.Zero(t, f.store.writes.Load())
	assert.Zero(t, f.translator.calls.Load())
}

func TestResolve_PassedItemOriginIsAuthoritative(t *testing.T) {
	f := newFixture(t, translateTo("unused"))
	// The registry records 42 as a duplicate of 7; the caller's copy does not.
	stale := &model.ContentItem{ID: 42, ContentType: "post", Language: "fr"}

	got, err := f.engine.Resolve(context.Background(), "Hello World", stale, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)
	assert.Zero(t, f.store.reads.Load())
	assert.Zero(t, f.translator.calls.Load())
}

func TestResolve_ProviderErrorReturnsOriginal(t *testing.T) {
	f := newFixture(t, failWith(&translator.ProviderError{StatusCode: 503, Message: "backend unavailable"}))

	got, err := f.engine.Resolve(context.Background(), "Hello World", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)
	assert.Zero(t, f.store.writes.Load(), "no cache entry after a failed remote call")

	_, ok := f.store.metaValue(42, Key("en", "fr", model.FieldTitle))
	assert.False(t, ok)
	assert.EqualValues(t, 1, f.engine.Stats().RemoteFailure)
}

func TestResolve_ConfigErrorPropagates(t *testing.T) {
	f := newFixture(t, failWith(&translator.ConfigError{Setting: "OCMS_TRANSLATE_API_KEY"}))

	got, err := f.engine.Resolve(context.Background(), "Hello World", f.variant, model.FieldTitle)
	require.Error(t, err)
	var cfgErr *translator.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Hello World", got)
	assert.Zero(t, f.store.writes.Load())
}

func TestResolve_NilTranslatorIsConfigError(t *testing.T) {
	f := newFixture(t, nil)
	f.engine = New(Options{
		Store:    f.store,
		Registry: f.registry,
		Settings: f.settings,
		Logger:   silentLogger(),
	})

	_, err := f.engine.Resolve(context.Background(), "Hello World", f.variant, model.FieldTitle)
	var cfgErr *translator.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestHandleContentSaved_InvalidationScope(t *testing.T) {
	f := newFixture(t, translateTo("Bonjour"))
	ctx := context.Background()

	_, err := f.engine.Resolve(ctx, "Hello", f.variant, model.FieldTitle)
	require.NoError(t, err)
	_, err = f.engine.Resolve(ctx, "Hello", f.other, model.FieldTitle)
	require.NoError(t, err)
	require.NoError(t, f.store.SetItemMeta(ctx, 42, "unrelated_meta", "keep"))
	assert.EqualValues(t, 2, f.translator.calls.Load())

	require.NoError(t, f.engine.HandleContentSaved(ctx, model.SaveEvent{ItemID: 42}))

	_, ok := f.store.metaValue(42, Key("en", "fr", model.FieldTitle))
	assert.False(t, ok, "item A entries are gone")
	_, ok = f.store.metaValue(42, "unrelated_meta")
	assert.True(t, ok, "meta outside the cache prefix survives")
	_, ok = f.store.metaValue(43, Key("en", "fr", model.FieldTitle))
	assert.True(t, ok, "item B entries are untouched")

	_, err = f.engine.Resolve(ctx, "Hello", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.EqualValues(t, 3, f.translator.calls.Load(), "exactly one new remote call for item A")
	assert.EqualValues(t, 1, f.engine.Stats().Invalidations)
}

func TestHandleContentSaved_RevisionIsNoop(t *testing.T) {
	f := newFixture(t, translateTo("Bonjour"))
	ctx := context.Background()

	_, err := f.engine.Resolve(ctx, "Hello", f.variant, model.FieldTitle)
	require.NoError(t, err)

	require.NoError(t, f.engine.HandleContentSaved(ctx, model.SaveEvent{ItemID: 42, IsRevision: true}))

	_, ok := f.store.metaValue(42, Key("en", "fr", model.FieldTitle))
	assert.True(t, ok)
	assert.Zero(t, f.engine.Stats().Invalidations)
}

func TestResolve_Guards(t *testing.T) {
	tests := []struct {
		name    string
		content string
		item    func(f *fixture) *model.ContentItem
		field   string
		setup   func(f *fixture)
		ctx     func(ctx context.Context) context.Context
	}{
		{
			name:    "nil item",
			content: "Hello",
			item:    func(*fixture) *model.ContentItem { return nil },
			field:   model.FieldTitle,
		},
		{
			name:    "empty content",
			content: "",
			item:    func(f *fixture) *model.ContentItem { return f.variant },
			field:   model.FieldTitle,
		},
		{
			name:    "whitespace-only content counts as empty",
			content: " \t\n ",
			item:    func(f *fixture) *model.ContentItem { return f.variant },
			field:   model.FieldTitle,
		},
		{
			name:    "ignore list uses origin id",
			content: "Hello",
			item:    func(f *fixture) *model.ContentItem { return f.variant },
			field:   model.FieldTitle,
			setup:   func(f *fixture) { f.settings.ignore = []string{"7_title"} },
		},
		{
			name:    "body excluded by item flag",
			content: "<p>Hello</p>",
			item: func(f *fixture) *model.ContentItem {
				f.variant.ExcludeAutoTranslate = true
				return f.variant
			},
			field: model.FieldBody,
		},
		{
			name:    "type not synced",
			content: "Hello",
			item: func(f *fixture) *model.ContentItem {
				f.variant.ContentType = "product"
				return f.variant
			},
			field: model.FieldTitle,
		},
		{
			name:    "show original",
			content: "Hello",
			item:    func(f *fixture) *model.ContentItem { return f.variant },
			field:   model.FieldTitle,
			ctx:     WithShowOriginal,
		},
		{
			name:    "origin language unknown",
			content: "Hello",
			item:    func(f *fixture) *model.ContentItem { return f.variant },
			field:   model.FieldTitle,
			setup:   func(f *fixture) { f.registry.failLang[7] = true },
		},
		{
			name:    "origin already in active language",
			content: "Bonjour",
			item:    func(f *fixture) *model.ContentItem { return f.variant },
			field:   model.FieldTitle,
			setup:   func(f *fixture) { f.origin.Language = "fr" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, translateTo("translated"))
			if tt.setup != nil {
				tt.setup(f)
			}
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx(ctx)
			}

			got, err := f.engine.Resolve(ctx, tt.content, tt.item(f), tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
			assert.Zero(t, f.translator.calls.Load())
			assert.Zero(t, f.store.writes.Load())
		})
	}
}

func TestResolve_ItemFlagDoesNotExcludeTitle(t *testing.T) {
	f := newFixture(t, translateTo("Bonjour"))
	f.variant.ExcludeAutoTranslate = true

	got, err := f.engine.Resolve(context.Background(), "Hello", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)
}

func TestResolve_ManualSyncIsEligible(t *testing.T) {
	f := newFixture(t, translateTo("Bonjour"))
	f.variant.ContentType = "page"

	got, err := f.engine.Resolve(context.Background(), "Hello", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)
}

func TestResolve_CacheStoreFailureStillTranslates(t *testing.T) {
	f := newFixture(t, translateTo("Bonjour"))
	f.store.failing = true

	got, err := f.engine.Resolve(context.Background(), "Hello", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)
	assert.EqualValues(t, 1, f.translator.calls.Load())
}

func TestResolve_PassesLanguagesToTranslator(t *testing.T) {
	var gotSource, gotTarget string
	tr := &fakeTranslator{fn: func(text, source, target string) (string, error) {
		gotSource, gotTarget = source, target
		return "Hallo", nil
	}}
	f := newFixture(t, tr)
	f.registry.active = "de"

	got, err := f.engine.Resolve(context.Background(), "Hello", f.variant, model.FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "Hallo", got)
	assert.Equal(t, "en", gotSource)
	assert.Equal(t, "de", gotTarget)

	_, ok := f.store.metaValue(42, Key("en", "de", model.FieldTitle))
	assert.True(t, ok)
}

func TestResolveField(t *testing.T) {
	tests := []struct {
		name  string
		field model.Field
		want  string
	}{
		{"opted in text", model.Field{Key: "subtitle", Kind: model.FieldKindText, AutoTranslate: true}, "Bonjour"},
		{"opted in rich text", model.Field{Key: "intro", Kind: model.FieldKindRichText, AutoTranslate: true}, "Bonjour"},
		{"not opted in", model.Field{Key: "subtitle", Kind: model.FieldKindText}, "Hello"},
		{"number kind", model.Field{Key: "price", Kind: model.FieldKindNumber, AutoTranslate: true}, "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, translateTo("Bonjour"))
			got, err := f.engine.ResolveField(context.Background(), "Hello", f.variant, tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveGlobal(t *testing.T) {
	f := newFixture(t, translateTo("Lire la suite"))
	ctx := context.Background()

	got, err := f.engine.ResolveGlobal(ctx, "Read more", "label_read_more")
	require.NoError(t, err)
	assert.Equal(t, "Lire la suite", got)

	cached, ok, err := f.engine.Cache().GetGlobal(ctx, "en", "fr", LabelKey("label_read_more", "Read more"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Lire la suite", cached)

	got, err = f.engine.ResolveGlobal(ctx, "Read more", "label_read_more")
	require.NoError(t, err)
	assert.Equal(t, "Lire la suite", got)
	assert.EqualValues(t, 1, f.translator.calls.Load())
}

func TestResolveGlobal_EditedContentIsRetranslated(t *testing.T) {
	tr := &fakeTranslator{fn: func(text, _, _ string) (string, error) {
		return map[string]string{"Hello": "Bonjour", "Goodbye": "Au revoir"}[text], nil
	}}
	f := newFixture(t, tr)
	ctx := context.Background()

	got, err := f.engine.ResolveGlobal(ctx, "Hello", "k")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)

	got, err = f.engine.ResolveGlobal(ctx, "Goodbye", "k")
	require.NoError(t, err)
	assert.Equal(t, "Au revoir", got)
	assert.EqualValues(t, 2, tr.calls.Load())

	got, err = f.engine.ResolveGlobal(ctx, "Hello", "k")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)
	assert.EqualValues(t, 2, tr.calls.Load(), "unchanged content is served from cache")
}

func TestLabelKey(t *testing.T) {
	a := LabelKey("footer", "Contact us")
	assert.Equal(t, a, LabelKey("footer", "Contact us"))
	assert.NotEqual(t, a, LabelKey("footer", "Write to us"))
	assert.NotEqual(t, a, LabelKey("header", "Contact us"))
	assert.Regexp(t, `^footer_[0-9a-f]{16}$`, a)
}

func TestResolveGlobal_DefaultLanguagePassesThrough(t *testing.T) {
	f := newFixture(t, translateTo("unused"))
	f.registry.active = "en"

	got, err := f.engine.ResolveGlobal(context.Background(), "Read more", "label_read_more")
	require.NoError(t, err)
	assert.Equal(t, "Read more", got)
	assert.Zero(t, f.translator.calls.Load())
}

func TestResolveGlobal_ConfigErrorPropagates(t *testing.T) {
	f := newFixture(t, failWith(&translator.ConfigError{Setting: "OCMS_TRANSLATE_API_KEY"}))

	_, err := f.engine.ResolveGlobal(context.Background(), "Read more", "label_read_more")
	var cfgErr *translator.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
