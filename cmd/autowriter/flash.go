package main

import (
	"github.com/spf13/cobra"

	"github.com/riordanpawley/autowriter/internal/cli"
)

var flashCmd = &cobra.Command{
	Use:   "flash <file>",
	Short: "Validate a flash message file",
	Long: `Parse a JSON file of server flash messages and print the toasts it
would raise, with their level, title, duration and delivery offset.

The file holds [category, message] pairs:

  [["error", "Invalid password"], ["success", "Welcome back, Bob!"]]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := dependencies(cmd)
		if err != nil {
			return err
		}
		return cli.FlashCommand(deps, args[0])
	},
}

func init() {
	rootCmd.AddCommand(flashCmd)
}
