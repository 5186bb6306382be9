package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/autowriter/internal/app"
	"github.com/riordanpawley/autowriter/internal/cli"
	"github.com/riordanpawley/autowriter/internal/i18n"
)

var tuiOpts struct {
	flashPath string
}

func init() {
	rootCmd.Flags().StringVar(&tuiOpts.flashPath, "flash", "",
		"JSON file of [category, message] flash pairs to show on startup")
}

func runTUI(cmd *cobra.Command, args []string) error {
	deps, err := dependencies(cmd)
	if err != nil {
		return err
	}

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithTranslator(deps.Translator),
	}

	flashPath := tuiOpts.flashPath
	if flashPath == "" {
		flashPath = cfg.Flash.Path
	}
	if flashPath != "" {
		msgs, err := cli.ReadFlash(flashPath)
		if err != nil {
			return err
		}
		opts = append(opts, app.WithFlash(msgs))
	}

	model := app.New(cfg, opts...)

	if cfg.I18n.Watch && cfg.I18n.CatalogPath != "" {
		watcher, err := i18n.NewWatcher(deps.Translator, cfg.I18n.CatalogPath, i18n.Builtin())
		if err != nil {
			logger.Warn("failed to create catalog watcher", "error", err)
		} else {
			notifier := model.Notifier()
			watcher.OnReload(func(cat i18n.Catalog) {
				notifier.Info(deps.Translator.T("Translations reloaded"), deps.Translator.T("Information"))
			})
			if err := watcher.Start(); err != nil {
				logger.Warn("failed to start catalog watcher", "path", cfg.I18n.CatalogPath, "error", err)
			} else {
				defer func() { _ = watcher.Stop() }()
			}
		}
	}

	logger.Info("starting tui", "lang", deps.Translator.Language(), "flash", flashPath)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
