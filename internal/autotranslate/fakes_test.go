package autotranslate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/olegiv/ocms-translate/internal/model"
)

var errFake = errors.New("fake failure")

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory Store that counts calls.
type fakeStore struct {
	mu      sync.Mutex
	meta    map[int64]map[string]string
	options map[string]string
	failing bool

	reads  atomic.Int32
	writes atomic.Int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		meta:    make(map[int64]map[string]string),
		options: make(map[string]string),
	}
}

func (s *fakeStore) GetItemMeta(_ context.Context, itemID int64, key string) (string, bool, error) {
	s.reads.Add(1)
	if s.failing {
		return "", false, errFake
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.meta[itemID][key]
	return v, ok, nil
}

func (s *fakeStore) SetItemMeta(_ context.Context, itemID int64, key, value string) error {
	s.writes.Add(1)
	if s.failing {
		return errFake
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta[itemID] == nil {
		s.meta[itemID] = make(map[string]string)
	}
	s.meta[itemID][key] = value
	return nil
}

func (s *fakeStore) DeleteItemMetaByPrefix(_ context.Context, itemID int64, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.meta[itemID] {
		if strings.HasPrefix(k, prefix) {
			delete(s.meta[itemID], k)
		}
	}
	return nil
}

func (s *fakeStore) GetOption(_ context.Context, key string) (string, bool, error) {
	s.reads.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.options[key]
	return v, ok, nil
}

func (s *fakeStore) SetOption(_ context.Context, key, value string) error {
	s.writes.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[key] = value
	return nil
}

func (s *fakeStore) metaValue(itemID int64, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.meta[itemID][key]
	return v, ok
}

// fakeRegistry is an in-memory Registry.
type fakeRegistry struct {
	active    string
	items     map[int64]*model.ContentItem
	links     []model.LanguageLink
	failLang  map[int64]bool
	failItems bool
}

func newFakeRegistry(active string, items ...*model.ContentItem) *fakeRegistry {
	r := &fakeRegistry{
		active:   active,
		items:    make(map[int64]*model.ContentItem),
		failLang: make(map[int64]bool),
	}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeRegistry) ActiveLanguageCode(context.Context) (string, error) {
	return r.active, nil
}

func (r *fakeRegistry) ActiveLanguages(context.Context) ([]model.LanguageLink, error) {
	return r.links, nil
}

func (r *fakeRegistry) LanguageOf(_ context.Context, itemID int64) (string, error) {
	if r.failLang[itemID] {
		return "", errFake
	}
	item, ok := r.items[itemID]
	if !ok {
		return "", errFake
	}
	return item.Language, nil
}

func (r *fakeRegistry) OriginOf(_ context.Context, itemID int64) (int64, bool, error) {
	item, ok := r.items[itemID]
	if !ok {
		return 0, false, errFake
	}
	return item.OriginID, item.OriginID != 0, nil
}

func (r *fakeRegistry) Item(_ context.Context, itemID int64) (*model.ContentItem, error) {
	if r.failItems {
		return nil, errFake
	}
	item, ok := r.items[itemID]
	if !ok {
		return nil, errFake
	}
	return item, nil
}

// fakeSettings is an in-memory Settings.
type fakeSettings struct {
	types  map[string]model.SyncSetting
	ignore []string
}

func (s *fakeSettings) TypeSyncSetting(_ context.Context, contentType string) (model.SyncSetting, error) {
	setting, ok := s.types[contentType]
	if !ok {
		return model.SyncOff, nil
	}
	return setting, nil
}

func (s *fakeSettings) IgnoreList(context.Context) ([]string, error) {
	return s.ignore, nil
}

// fakeCorrections is an in-memory CorrectionSource.
type fakeCorrections struct {
	entries []model.Correction
}

func (c *fakeCorrections) Corrections(context.Context) ([]model.Correction, error) {
	return c.entries, nil
}

// fakeTranslator returns canned translations and counts calls.
type fakeTranslator struct {
	calls atomic.Int32
	fn    func(text, source, target string) (string, error)
}

func (t *fakeTranslator) Translate(_ context.Context, text, source, target string) (string, error) {
	t.calls.Add(1)
	return t.fn(text, source, target)
}

func translateTo(out string) *fakeTranslator {
	return &fakeTranslator{fn: func(string, string, string) (string, error) { return out, nil }}
}

func failWith(err error) *fakeTranslator {
	return &fakeTranslator{fn: func(string, string, string) (string, error) { return "", err }}
}
