package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/autowriter/internal/domain"
)

func TestBuiltin(t *testing.T) {
	cat := Builtin()
	assert.Equal(t, []string{"en", "my"}, cat.Languages())

	// Every English key has a Burmese counterpart.
	for key := range cat["en"] {
		_, ok := cat.Lookup("my", key)
		assert.True(t, ok, "missing my translation for %q", key)
	}

	text, ok := cat.Lookup("my", "Cancel")
	require.True(t, ok)
	assert.Equal(t, "မပြင်ဆင်တော့ပါ", text)

	text, ok = cat.Lookup("en", "Yes")
	require.True(t, ok)
	assert.Equal(t, "Yes", text)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid yaml", "en: [unclosed"},
		{"empty", ""},
		{"wrong shape", "en: just-a-string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data))
			require.Error(t, err)

			var ce *domain.CatalogError
			assert.True(t, errors.As(err, &ce))
			assert.Equal(t, "parse", ce.Op)
		})
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := LoadCatalog(path)
	require.Error(t, err)

	var ce *domain.CatalogError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "load", ce.Op)
	assert.Equal(t, path, ce.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCatalog_ParseErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("en: [x"), 0o644))

	_, err := LoadCatalog(path)
	var ce *domain.CatalogError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, path, ce.Path)
}

func TestCatalog_Merge(t *testing.T) {
	base := Catalog{"en": {"OK": "OK", "Cancel": "Cancel"}}
	over := Catalog{
		"en": {"OK": "Okay"},
		"fr": {"OK": "D'accord"},
	}

	merged := base.Merge(over)
	assert.Equal(t, "Okay", merged["en"]["OK"])
	assert.Equal(t, "Cancel", merged["en"]["Cancel"])
	assert.Equal(t, "D'accord", merged["fr"]["OK"])

	assert.Equal(t, "OK", base["en"]["OK"], "merge does not mutate inputs")
}

func TestTranslator_Fallbacks(t *testing.T) {
	cat := Catalog{
		"en": {"OK": "OK", "Only English": "Only English"},
		"my": {"OK": "အိုကေ", "Blank": ""},
	}
	tr := NewTranslator(cat, "my")

	assert.Equal(t, "my", tr.Language())
	assert.Equal(t, "အိုကေ", tr.T("OK"))
	assert.Equal(t, "Only English", tr.T("Only English"), "falls back to default language")
	assert.Equal(t, "Not in catalog", tr.T("Not in catalog"), "falls back to key")
	assert.Equal(t, "Blank", tr.T("Blank"), "empty text counts as missing")
}

func TestTranslator_UnknownLanguageUsesDefault(t *testing.T) {
	tr := NewTranslator(Builtin(), "fr")
	assert.Equal(t, DefaultLanguage, tr.Language())
}

func TestTranslator_NilCatalogUsesBuiltin(t *testing.T) {
	tr := NewTranslator(nil, "")
	assert.Equal(t, "en", tr.Language())
	assert.Equal(t, []string{"en", "my"}, tr.Languages())
}

func TestTranslator_SetLanguage(t *testing.T) {
	tr := NewTranslator(Builtin(), "en")

	require.NoError(t, tr.SetLanguage("my-MM"))
	assert.Equal(t, "my", tr.Language())
	assert.Equal(t, "ဟုတ်ကဲ့", tr.T("Yes"))

	err := tr.SetLanguage("de")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
	assert.Equal(t, "my", tr.Language(), "failed switch keeps the active language")
}

func TestTranslator_Next(t *testing.T) {
	tr := NewTranslator(Builtin(), "en")
	assert.Equal(t, "my", tr.Next())
	assert.Equal(t, "en", tr.Next())
}

func TestTranslator_FuncAndTf(t *testing.T) {
	tr := NewTranslator(Catalog{"en": {"Hello %s": "Hi %s"}}, "en")
	fn := tr.Func()
	assert.Equal(t, "Hi %s", fn("Hello %s"))
	assert.Equal(t, "Hi Bob", tr.Tf("Hello %s", "Bob"))
}

func TestTranslator_Replace(t *testing.T) {
	tr := NewTranslator(Builtin(), "my")

	tr.Replace(Catalog{"my": {"OK": "OK!"}, "en": {}})
	assert.Equal(t, "my", tr.Language())
	assert.Equal(t, "OK!", tr.T("OK"))

	tr.Replace(Catalog{"en": {"OK": "OK"}})
	assert.Equal(t, DefaultLanguage, tr.Language(), "removed language falls back")
}

func TestParseLanguage(t *testing.T) {
	supported := []string{"en", "my"}

	tests := []struct {
		tag     string
		want    string
		wantErr bool
	}{
		{tag: "en", want: "en"},
		{tag: "EN", want: "en"},
		{tag: "en-GB", want: "en"},
		{tag: "my", want: "my"},
		{tag: "my-MM", want: "my"},
		{tag: "fr", wantErr: true},
		{tag: "", wantErr: true},
		{tag: "not a tag!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseLanguage(tt.tag, supported)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLanguage_NoSupported(t *testing.T) {
	_, err := ParseLanguage("en", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestWatcher_ReloadMergesOverBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("en:\n  OK: Okay\n"), 0o644))

	tr := NewTranslator(Builtin(), "en")
	w, err := NewWatcher(tr, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	var reloaded Catalog
	w.OnReload(func(c Catalog) { reloaded = c })

	require.NoError(t, w.Reload())
	assert.Equal(t, "Okay", tr.T("OK"))
	assert.Equal(t, "Cancel", tr.T("Cancel"), "builtin keys survive")
	assert.NotNil(t, reloaded)
}

func TestWatcher_BadFileKeepsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("en: [broken"), 0o644))

	tr := NewTranslator(Builtin(), "en")
	w, err := NewWatcher(tr, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	assert.Error(t, w.Reload())
	assert.Equal(t, "OK", tr.T("OK"))
}

func TestWatcher_PicksUpWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("en:\n  OK: First\n"), 0o644))

	tr := NewTranslator(Builtin(), "en")
	w, err := NewWatcher(tr, path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	assert.Equal(t, "First", tr.T("OK"))

	require.NoError(t, os.WriteFile(path, []byte("en:\n  OK: Second\n"), 0o644))
	assert.Eventually(t, func() bool {
		return tr.T("OK") == "Second"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	tr := NewTranslator(Builtin(), "en")
	w, err := NewWatcher(tr, filepath.Join(t.TempDir(), "c.yaml"), nil)
	require.NoError(t, err)

	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NotPanics(t, func() { _ = w.Stop() })
}
