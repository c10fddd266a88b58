package cmd

import (
	"github.com/spf13/cobra"

	"github.com/homeplay/homeplay/internal/logging"
)

var persistCmd = &cobra.Command{
	Use:   "persist",
	Short: "Make the last-launched sandbox the default environment",
	Long: `persist writes two wrapper scripts to the script directory: one that
launches the host application with HOME pointed at the last-launched
sandbox, and one that launches it with the real home restored.`,
	Args: cobra.NoArgs,
	RunE: runPersist,
}

var unpersistCmd = &cobra.Command{
	Use:   "unpersist",
	Short: "Remove the wrapper scripts",
	Args:  cobra.NoArgs,
	RunE:  runUnpersist,
}

func init() {
	rootCmd.AddCommand(persistCmd)
	rootCmd.AddCommand(unpersistCmd)
}

func runPersist(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.Persist(confirmPrompt); err != nil {
		return err
	}

	logging.UserSuccess("Wrapper scripts written to %s", a.Paths.ScriptDir)
	return nil
}

func runUnpersist(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.Unpersist(confirmPrompt); err != nil {
		return err
	}

	logging.UserSuccess("Wrapper scripts removed")
	return nil
}
