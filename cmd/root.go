package cmd

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/homeplay/homeplay/internal/app"
	"github.com/homeplay/homeplay/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	assumeYes  bool
)

var rootCmd = &cobra.Command{
	Use:   "homeplay",
	Short: "Try alternative configurations in sandboxed home directories",
	Long: `homeplay checks out configuration repositories into isolated sandbox
home directories and launches the host application against them.

Each sandbox is a substitute home directory with:
  - A cloned configuration repository (the configuration checkout)
  - Symlinks back to inherited paths in the real home (e.g. ~/.gnupg)

A sandbox can be made the default environment with 'homeplay persist'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Assume yes for all confirmation prompts")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newApp builds the application from the user's real configuration.
func newApp() (*app.App, error) {
	return app.New()
}

// confirmPrompt asks a yes/no question, honoring --yes.
func confirmPrompt(message string) bool {
	if assumeYes {
		return true
	}

	var ok bool
	if err := huh.NewConfirm().Title(message).Value(&ok).Run(); err != nil {
		return false
	}
	return ok
}
