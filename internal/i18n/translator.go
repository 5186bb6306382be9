package i18n

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/riordanpawley/autowriter/internal/domain"
)

// DefaultLanguage is used when no language is configured or the configured
// one is not in the catalog.
const DefaultLanguage = "en"

// Translator resolves keys against a catalog in the active language. It is
// safe for concurrent use; the catalog may be swapped at runtime by a Watcher.
type Translator struct {
	mu      sync.RWMutex
	catalog Catalog
	lang    string
	logger  *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the logger used for missing-key and reload output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator creates a translator over cat. An unknown lang falls back to
// DefaultLanguage rather than failing.
func NewTranslator(cat Catalog, lang string, opts ...Option) *Translator {
	if cat == nil {
		cat = Builtin()
	}
	t := &Translator{
		catalog: cat,
		lang:    DefaultLanguage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	if lang != "" {
		if err := t.SetLanguage(lang); err != nil {
			t.logger.Warn("unknown language, using default", "lang", lang, "default", DefaultLanguage)
		}
	}
	return t
}

// T translates key. Lookup order: active language, DefaultLanguage, the key.
func (t *Translator) T(key string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if text, ok := t.catalog.Lookup(t.lang, key); ok {
		return text
	}
	if text, ok := t.catalog.Lookup(DefaultLanguage, key); ok {
		return text
	}
	t.logger.Debug("missing translation", "lang", t.lang, "key", key)
	return key
}

// Tf translates key and formats the result with args.
func (t *Translator) Tf(key string, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}

// Func adapts the translator to the plain lookup function the modal
// manager accepts.
func (t *Translator) Func() func(string) string {
	return t.T
}

// Language returns the active language code.
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// Languages returns the languages available in the current catalog.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.catalog.Languages()
}

// SetLanguage switches the active language. tag may be any BCP 47 tag
// (e.g. "my-MM"); it is matched against the catalog's languages.
func (t *Translator) SetLanguage(tag string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	lang, err := ParseLanguage(tag, t.catalog.Languages())
	if err != nil {
		return err
	}
	t.lang = lang
	return nil
}

// Next cycles to the language after the active one and returns it.
func (t *Translator) Next() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	langs := t.catalog.Languages()
	if len(langs) == 0 {
		return t.lang
	}
	idx := 0
	for i, l := range langs {
		if l == t.lang {
			idx = (i + 1) % len(langs)
			break
		}
	}
	t.lang = langs[idx]
	return t.lang
}

// Replace swaps in a new catalog. If the active language disappeared the
// translator falls back to DefaultLanguage.
func (t *Translator) Replace(cat Catalog) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.catalog = cat
	if _, ok := cat[t.lang]; !ok {
		t.logger.Warn("active language removed from catalog", "lang", t.lang)
		t.lang = DefaultLanguage
	}
	t.logger.Debug("catalog replaced", "languages", cat.Languages())
}

// ParseLanguage matches a BCP 47 tag against the supported language codes
// and returns the supported code it resolves to. Regional variants match
// their base language ("en-GB" -> "en").
func ParseLanguage(tag string, supported []string) (string, error) {
	if tag == "" {
		return "", fmt.Errorf("%w: empty tag", domain.ErrUnknownLanguage)
	}
	requested, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", domain.ErrUnknownLanguage, tag, err)
	}

	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, s := range supported {
		st, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, st)
		codes = append(codes, s)
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("%w: %q: no supported languages", domain.ErrUnknownLanguage, tag)
	}

	_, idx, conf := language.NewMatcher(tags).Match(requested)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, tag)
	}
	return codes[idx], nil
}
