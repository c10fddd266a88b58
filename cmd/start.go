package cmd

import (
	"github.com/spf13/cobra"

	"github.com/homeplay/homeplay/internal/logging"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Relaunch the most recently launched sandbox",
	Long: `start relaunches the host application against the last sandbox that
was launched in this session. If that sandbox still has a live session,
you are asked before it is killed and replaced.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.StartLast(cmd.Context(), confirmPrompt); err != nil {
		return err
	}

	logging.UserSuccess("Relaunched")
	return nil
}
