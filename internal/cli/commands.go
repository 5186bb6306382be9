package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/riordanpawley/autowriter/internal/config"
	"github.com/riordanpawley/autowriter/internal/flash"
	"github.com/riordanpawley/autowriter/internal/i18n"
)

// Dependencies holds everything the CLI commands need
type Dependencies struct {
	Config     *config.Config
	Catalog    i18n.Catalog
	Translator *i18n.Translator
	Logger     *slog.Logger
	Out        io.Writer
}

// NewDependencies loads the translation catalog and builds the translator.
// lang overrides the configured language when non-empty.
func NewDependencies(cfg *config.Config, lang string, logger *slog.Logger) (*Dependencies, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cat, err := LoadCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}

	if lang == "" {
		lang = cfg.Language
	}
	resolved, err := i18n.ParseLanguage(lang, cat.Languages())
	if err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}

	return &Dependencies{
		Config:     cfg,
		Catalog:    cat,
		Translator: i18n.NewTranslator(cat, resolved, i18n.WithLogger(logger)),
		Logger:     logger,
		Out:        os.Stdout,
	}, nil
}

// LoadCatalog returns the built-in catalog with the user catalog layered on
// top. A missing user catalog is not an error.
func LoadCatalog(cfg *config.Config, logger *slog.Logger) (i18n.Catalog, error) {
	base := i18n.Builtin()

	path := cfg.I18n.CatalogPath
	if path == "" {
		return base, nil
	}

	user, err := i18n.LoadCatalog(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("user catalog not found", "path", path)
		return base, nil
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("user catalog loaded", "path", path, "languages", user.Languages())
	return base.Merge(user), nil
}

// TranslateCommand prints the translation of each key in the active language.
// With all set it prints every catalog language instead.
func TranslateCommand(deps *Dependencies, keys []string, all bool) error {
	if len(keys) == 0 {
		return errors.New("no keys given")
	}

	langs := []string{deps.Translator.Language()}
	if all {
		langs = deps.Catalog.Languages()
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LANG\tKEY\tTEXT")
	for _, key := range keys {
		for _, lang := range langs {
			text, ok := deps.Catalog.Lookup(lang, key)
			if !ok {
				text = deps.Translator.T(key) + " (fallback)"
				if lang != deps.Translator.Language() {
					text = key + " (missing)"
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", lang, key, text)
		}
	}
	return w.Flush()
}

// LanguagesCommand lists the catalog languages, marking the active one.
func LanguagesCommand(deps *Dependencies) error {
	active := deps.Translator.Language()
	for _, lang := range deps.Catalog.Languages() {
		marker := " "
		if lang == active {
			marker = "*"
		}
		fmt.Fprintf(deps.Out, "%s %s (%d keys)\n", marker, lang, len(deps.Catalog[lang]))
	}
	return nil
}

// ReadFlash loads a flash message file.
func ReadFlash(path string) ([]flash.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flash file: %w", err)
	}
	msgs, err := flash.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse flash file %s: %w", path, err)
	}
	return msgs, nil
}

// FlashCommand validates a flash file and prints the toasts it would raise.
func FlashCommand(deps *Dependencies, path string) error {
	msgs, err := ReadFlash(path)
	if err != nil {
		return err
	}

	deps.Logger.Info("flash file parsed", "path", path, "messages", len(msgs))

	if len(msgs) == 0 {
		fmt.Fprintln(deps.Out, "No flash messages")
		return nil
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AT\tLEVEL\tTITLE\tDURATION\tMESSAGE")
	for i, m := range msgs {
		t := flash.Classify(m)
		d := t.Duration
		if d == 0 {
			d = deps.Config.DefaultDuration()
		}
		at := time.Duration(i) * flash.Stagger
		fmt.Fprintf(w, "+%s\t%s\t%s\t%s\t%s\n", at, t.Level, t.Title, formatDuration(d), t.Message)
	}
	return w.Flush()
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "until closed"
	}
	return d.String()
}
