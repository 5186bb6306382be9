package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/autowriter/internal/cli"
	"github.com/riordanpawley/autowriter/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		envFiles   []string
		lang       string
		logFile    string
	}
	logger  *slog.Logger
	logSink io.Closer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "autowriter",
	Short: "Content library with toast notifications and dialogs",
	Long: `autowriter is a terminal front end for a library of generated content.

Deleting or renaming content goes through confirmation and input dialogs,
and the outcome is reported with toast notifications that dismiss
themselves. The interface is available in English and Burmese.

Running autowriter without a subcommand launches the interactive TUI.`,
	Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logSink != nil {
			return logSink.Close()
		}
		return nil
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: the hook refers to rootCmd.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath, globalOpts.envFiles...)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalOpts.logFile != "" {
			cfg.Log.File = globalOpts.logFile
		}

		return setupLogger(cmd.Name() == rootCmd.Name())
	}

	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/autowriter/config.toml)")
	rootCmd.PersistentFlags().StringSliceVar(&globalOpts.envFiles, "env-file", nil,
		"Environment files to load before applying AUTOWRITER_* overrides (default: .env)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.lang, "lang", "l", "",
		"Interface language (BCP 47 tag, e.g. en, my)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Path to log file (default: ~/.local/state/autowriter/autowriter.log)")
}

// setupLogger configures the global slog logger. The TUI owns the terminal,
// so it logs to a file; subcommands log to stderr.
func setupLogger(toFile bool) error {
	level := cfg.SlogLevel()
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var out io.Writer = os.Stderr
	if toFile {
		path := cfg.Log.File
		if path == "" {
			path = config.LogPath()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		logSink = f
	}

	handler := slog.NewTextHandler(out, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// dependencies builds the shared command dependencies.
func dependencies(cmd *cobra.Command) (*cli.Dependencies, error) {
	deps, err := cli.NewDependencies(cfg, globalOpts.lang, logger)
	if err != nil {
		return nil, err
	}
	deps.Out = cmd.OutOrStdout()
	return deps, nil
}
