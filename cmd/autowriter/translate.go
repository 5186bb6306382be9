package main

import (
	"github.com/spf13/cobra"

	"github.com/riordanpawley/autowriter/internal/cli"
)

var translateOpts struct {
	all bool
}

var translateCmd = &cobra.Command{
	Use:   "translate <key>...",
	Short: "Look up catalog translations",
	Long: `Print the translation of each key in the active language.

Keys are the English source strings, for example:

  autowriter translate --lang my Cancel "Please enter content title"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := dependencies(cmd)
		if err != nil {
			return err
		}
		return cli.TranslateCommand(deps, args, translateOpts.all)
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List catalog languages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := dependencies(cmd)
		if err != nil {
			return err
		}
		return cli.LanguagesCommand(deps)
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(languagesCmd)

	translateCmd.Flags().BoolVarP(&translateOpts.all, "all", "a", false,
		"Show every catalog language")
}
