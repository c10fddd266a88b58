package cmd

import (
	"github.com/spf13/cobra"

	"github.com/homeplay/homeplay/internal/logging"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Re-create missing inherited symlinks in all sandboxes",
	Long: `repair walks every sandbox under the sandbox root and fills in any
missing inherited symlinks. Existing files and links are never touched,
so repair is always safe to run.`,
	Args: cobra.NoArgs,
	RunE: runRepair,
}

func init() {
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	if err := a.Repair(); err != nil {
		return err
	}

	logging.UserSuccess("Inherited symlinks repaired")
	return nil
}
