package autotranslate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocms-translate/internal/model"
)

func TestLanguageResolver_NoRegistry(t *testing.T) {
	r := NewLanguageResolver(nil, "", silentLogger())

	assert.Equal(t, DefaultLanguage, r.ActiveLanguage(context.Background()))
	assert.Nil(t, r.SupportedLanguages(context.Background()))

	_, ok := r.LanguageURL(context.Background(), "fr")
	assert.False(t, ok)
}

func TestLanguageResolver_EmptyActiveFallsBack(t *testing.T) {
	reg := newFakeRegistry("")
	r := NewLanguageResolver(reg, "de", silentLogger())

	assert.Equal(t, "de", r.ActiveLanguage(context.Background()))
}

func TestLanguageResolver_SupportedLanguagesKeepsOrder(t *testing.T) {
	reg := newFakeRegistry("fr")
	reg.links = []model.LanguageLink{
		{Code: "ru", URL: "https://example.com/ru/"},
		{Code: "fr", URL: "https://example.com/fr/"},
		{Code: "en", URL: "https://example.com/"},
	}
	r := NewLanguageResolver(reg, "en", silentLogger())

	links := r.SupportedLanguages(context.Background())
	require.Len(t, links, 3)
	assert.Equal(t, "ru", links[0].Code)
	assert.Equal(t, "en", links[2].Code)

	url, ok := r.LanguageURL(context.Background(), "fr")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/fr/", url)

	_, ok = r.LanguageURL(context.Background(), "de")
	assert.False(t, ok)
}

func TestOriginResolver(t *testing.T) {
	origin := &model.ContentItem{ID: 1, ContentType: "post", Language: "en"}
	variant := &model.ContentItem{ID: 2, ContentType: "post", Language: "fr", OriginID: 1}
	sameLang := &model.ContentItem{ID: 3, ContentType: "post", Language: "en"}
	reg := newFakeRegistry("en", origin, variant, sameLang)
	langs := NewLanguageResolver(reg, "en", silentLogger())
	o := NewOriginResolver(reg, langs, silentLogger())
	ctx := context.Background()

	t.Run("origin of variant", func(t *testing.T) {
		assert.Same(t, origin, o.OriginOf(ctx, variant))
	})

	t.Run("origin of origin is itself", func(t *testing.T) {
		assert.Same(t, origin, o.OriginOf(ctx, origin))
	})

	t.Run("registry error returns item unchanged", func(t *testing.T) {
		reg.failItems = true
		defer func() { reg.failItems = false }()
		assert.Same(t, variant, o.OriginOf(ctx, variant))
	})

	t.Run("language error defaults to canonical", func(t *testing.T) {
		reg.failLang[2] = true
		defer delete(reg.failLang, 2)
		assert.Equal(t, "en", o.LanguageOf(ctx, variant))
	})

	t.Run("different language is a variant", func(t *testing.T) {
		assert.True(t, o.IsVariant(ctx, variant))
	})

	t.Run("same language origin is not a variant", func(t *testing.T) {
		assert.False(t, o.IsVariant(ctx, sameLang))
	})

	t.Run("duplicate flag wins over matching language", func(t *testing.T) {
		dup := &model.ContentItem{ID: 4, ContentType: "post", Language: "en", OriginID: 1}
		reg.items[4] = dup
		assert.True(t, o.IsVariant(ctx, dup))
	})
}

func TestOriginResolver_NoRegistryUsesItemFields(t *testing.T) {
	langs := NewLanguageResolver(nil, "en", silentLogger())
	o := NewOriginResolver(nil, langs, silentLogger())
	item := &model.ContentItem{ID: 9, Language: "fr", OriginID: 3}

	assert.Same(t, item, o.OriginOf(context.Background(), item))
	assert.Equal(t, "fr", o.LanguageOf(context.Background(), item))
	assert.True(t, o.IsVariant(context.Background(), item))
}

func TestPolicy(t *testing.T) {
	settings := &fakeSettings{
		types: map[string]model.SyncSetting{
			"post":    model.SyncAuto,
			"page":    model.SyncManual,
			"product": model.SyncOff,
		},
		ignore: []string{"10_title", "10_subtitle"},
	}
	p := NewPolicy(settings, silentLogger())
	ctx := context.Background()

	assert.True(t, p.IsTypeEligible(ctx, "post"))
	assert.True(t, p.IsTypeEligible(ctx, "page"))
	assert.False(t, p.IsTypeEligible(ctx, "product"))
	assert.False(t, p.IsTypeEligible(ctx, "unknown"))

	item := &model.ContentItem{ID: 11, ContentType: "post", OriginID: 10}
	ignore := p.IgnoreList(ctx)
	assert.True(t, p.IsExcluded(item, model.FieldTitle, ignore))
	assert.True(t, p.IsExcluded(item, "subtitle", ignore))
	assert.False(t, p.IsExcluded(item, model.FieldBody, ignore))

	item.ExcludeAutoTranslate = true
	assert.True(t, p.IsExcluded(item, model.FieldBody, ignore))

	origin := &model.ContentItem{ID: 10, ContentType: "post"}
	assert.True(t, p.IsExcluded(origin, model.FieldTitle, ignore), "origins are matched by their own id")

	field := model.Field{Key: "subtitle", Kind: model.FieldKindTextarea, AutoTranslate: true}
	assert.True(t, p.IsFieldEligible(ctx, field, item))
	assert.False(t, p.IsFieldEligible(ctx, field, &model.ContentItem{ContentType: "product"}))
}

func TestPolicy_NilSettings(t *testing.T) {
	p := NewPolicy(nil, silentLogger())
	assert.False(t, p.IsTypeEligible(context.Background(), "post"))
	assert.Empty(t, p.IgnoreList(context.Background()))
}

func TestIgnoreToken(t *testing.T) {
	assert.Equal(t, "42_title", IgnoreToken(42, model.FieldTitle))
}

func TestCorrectionLookup(t *testing.T) {
	source := &fakeCorrections{entries: []model.Correction{
		{SourceText: "Read More", CorrectedText: "Lire la suite"},
		{SourceText: "STRASSE", CorrectedText: "Rue"},
	}}
	l := NewCorrectionLookup(source, silentLogger())
	ctx := context.Background()

	got, ok := l.Lookup(ctx, "  read more\n")
	assert.True(t, ok)
	assert.Equal(t, "Lire la suite", got)

	got, ok = l.Lookup(ctx, "Straße")
	assert.True(t, ok, "full case folding matches ß and SS")
	assert.Equal(t, "Rue", got)

	_, ok = l.Lookup(ctx, "read")
	assert.False(t, ok)

	_, ok = NewCorrectionLookup(nil, silentLogger()).Lookup(ctx, "Read More")
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "_autotranslate_en_fr_title", Key("en", "fr", "title"))
}

func TestCache(t *testing.T) {
	store := newFakeStore()
	c := NewCache(store)
	ctx := context.Background()
	a := &model.ContentItem{ID: 1}
	b := &model.ContentItem{ID: 2}

	_, ok, err := c.Get(ctx, a, "en", "fr", "title")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, a, "en", "fr", "title", "first"))
	require.NoError(t, c.Put(ctx, a, "en", "fr", "title", "second"))
	require.NoError(t, c.Put(ctx, b, "en", "fr", "title", "other"))

	got, ok, err := c.Get(ctx, a, "en", "fr", "title")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", got)

	require.NoError(t, c.InvalidateAll(ctx, a))
	_, ok, _ = c.Get(ctx, a, "en", "fr", "title")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, b, "en", "fr", "title")
	assert.True(t, ok)

	require.NoError(t, c.PutGlobal(ctx, "en", "de", "footer", "Fußzeile"))
	got, ok, err = c.GetGlobal(ctx, "en", "de", "footer")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Fußzeile", got)

	store.failing = true
	_, _, err = c.Get(ctx, a, "en", "fr", "title")
	assert.ErrorIs(t, err, errFake)
}
