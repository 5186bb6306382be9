package cli

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/autowriter/internal/config"
	"github.com/riordanpawley/autowriter/internal/domain"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDeps(t *testing.T, cfg *config.Config, lang string) (*Dependencies, *bytes.Buffer) {
	t.Helper()
	deps, err := NewDependencies(cfg, lang, discard())
	require.NoError(t, err)
	var out bytes.Buffer
	deps.Out = &out
	return deps, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDependencies_Defaults(t *testing.T) {
	deps, _ := newDeps(t, config.DefaultConfig(), "")

	assert.Equal(t, "en", deps.Translator.Language())
	assert.ElementsMatch(t, []string{"en", "my"}, deps.Catalog.Languages())
}

func TestNewDependencies_LanguageOverride(t *testing.T) {
	deps, _ := newDeps(t, config.DefaultConfig(), "my-MM")
	assert.Equal(t, "my", deps.Translator.Language())
}

func TestNewDependencies_UnknownLanguage(t *testing.T) {
	_, err := NewDependencies(config.DefaultConfig(), "fr", discard())
	require.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestLoadCatalog_UserOverlay(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.I18n.CatalogPath = writeFile(t, "catalog.yaml", "en:\n  Cancel: Never mind\nth:\n  Cancel: ยกเลิก\n")

	cat, err := LoadCatalog(cfg, discard())
	require.NoError(t, err)

	text, ok := cat.Lookup("en", "Cancel")
	require.True(t, ok)
	assert.Equal(t, "Never mind", text)

	text, ok = cat.Lookup("en", "OK")
	require.True(t, ok, "builtin keys survive")
	assert.Equal(t, "OK", text)

	assert.Contains(t, cat.Languages(), "th")
}

func TestLoadCatalog_MissingUserFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.I18n.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

	cat, err := LoadCatalog(cfg, discard())
	require.NoError(t, err)
	assert.Contains(t, cat.Languages(), "my")
}

func TestLoadCatalog_BadUserFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.I18n.CatalogPath = writeFile(t, "catalog.yaml", "en: [not, a, map]\n")

	_, err := LoadCatalog(cfg, discard())

	var ce *domain.CatalogError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, cfg.I18n.CatalogPath, ce.Path)
}

func TestTranslateCommand(t *testing.T) {
	deps, out := newDeps(t, config.DefaultConfig(), "my")

	require.NoError(t, TranslateCommand(deps, []string{"Cancel"}, false))
	assert.Contains(t, out.String(), "LANG")
	assert.Contains(t, out.String(), "မပြင်ဆင်တော့ပါ")
	assert.NotContains(t, out.String(), "en ")
}

func TestTranslateCommand_AllLanguages(t *testing.T) {
	deps, out := newDeps(t, config.DefaultConfig(), "")

	require.NoError(t, TranslateCommand(deps, []string{"OK", "Not a key"}, true))
	s := out.String()
	assert.Contains(t, s, "အိုကေ")
	assert.Contains(t, s, "Not a key (fallback)")
	assert.Contains(t, s, "Not a key (missing)")
}

func TestTranslateCommand_NoKeys(t *testing.T) {
	deps, _ := newDeps(t, config.DefaultConfig(), "")
	assert.Error(t, TranslateCommand(deps, nil, false))
}

func TestLanguagesCommand(t *testing.T) {
	deps, out := newDeps(t, config.DefaultConfig(), "my")

	require.NoError(t, LanguagesCommand(deps))
	assert.Contains(t, out.String(), "* my")
	assert.Contains(t, out.String(), "  en")
}

func TestFlashCommand(t *testing.T) {
	deps, out := newDeps(t, config.DefaultConfig(), "")
	path := writeFile(t, "flash.json", `[["error","Invalid password"],["error","Your trial account has expired"],["success","Content saved successfully!"]]`)

	require.NoError(t, FlashCommand(deps, path))
	s := out.String()
	assert.Contains(t, s, "Login Failed")
	assert.Contains(t, s, "8s", "expiry messages stay longer")
	assert.Contains(t, s, "5s")
	assert.Contains(t, s, "+200ms")
}

func TestFlashCommand_Empty(t *testing.T) {
	deps, out := newDeps(t, config.DefaultConfig(), "")
	path := writeFile(t, "flash.json", `[]`)

	require.NoError(t, FlashCommand(deps, path))
	assert.Contains(t, out.String(), "No flash messages")
}

func TestFlashCommand_Errors(t *testing.T) {
	deps, _ := newDeps(t, config.DefaultConfig(), "")

	err := FlashCommand(deps, filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	err = FlashCommand(deps, writeFile(t, "bad.json", `{"not": "an array"}`))
	assert.ErrorContains(t, err, "failed to parse flash file")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "until closed", formatDuration(0))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
}
