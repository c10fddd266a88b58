package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeplay/homeplay/internal/logging"
	"github.com/homeplay/homeplay/internal/tui"
	"github.com/homeplay/homeplay/internal/vcs"
)

var (
	checkoutRecursive bool
	checkoutDepth     int
	checkoutConfig    string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout [name | repository]",
	Short: "Provision a sandbox and launch into it",
	Long: `checkout resolves its argument to a sandbox and launches the host
application against it:

  - the name of an installed sandbox launches it directly
  - the name of a suggested configuration provisions it first
  - a repository reference (owner/repo, clone URL, or local repo path)
    provisions a sandbox under a derived name

--config restricts resolution to the suggested configurations, so a name
that happens to look like a repository reference is never misread.

With no argument, an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckout,
}

func init() {
	checkoutCmd.Flags().BoolVar(&checkoutRecursive, "recursive", false, "Clone submodules recursively")
	checkoutCmd.Flags().IntVar(&checkoutDepth, "depth", 0, "Shallow clone depth (0 for a full clone)")
	checkoutCmd.Flags().StringVar(&checkoutConfig, "config", "", "Check out a suggested configuration by name")
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	opts := vcs.CloneOptions{Recursive: checkoutRecursive, Depth: checkoutDepth}

	if checkoutConfig != "" {
		if len(args) > 0 {
			return fmt.Errorf("--config cannot be combined with a positional argument")
		}
		if err := a.CheckoutConfig(cmd.Context(), checkoutConfig, opts); err != nil {
			return err
		}
		logging.UserSuccess("Launched %s", checkoutConfig)
		return nil
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	} else {
		installed, err := a.List()
		if err != nil {
			return err
		}
		choice, err := tui.RunPicker(installed, a.Config.Configs)
		if err != nil {
			return err
		}
		if choice.Cancelled {
			logging.UserInfo("Nothing selected")
			return nil
		}
		input = choice.Name
	}

	if err := a.Checkout(cmd.Context(), input, opts); err != nil {
		return err
	}

	logging.UserSuccess("Launched %s", input)
	return nil
}
