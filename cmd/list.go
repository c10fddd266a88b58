package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/homeplay/homeplay/internal/logging"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed sandboxes",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	sandboxes, err := a.List()
	if err != nil {
		return err
	}

	if len(sandboxes) == 0 {
		logging.UserInfo("No sandboxes installed. Create one with: homeplay checkout <repository>")
		return nil
	}

	for _, sb := range sandboxes {
		origin, created := "unknown origin", ""
		if sb.Metadata != nil {
			if sb.Metadata.RepoURL != "" {
				origin = sb.Metadata.RepoURL
			}
			created = sb.Metadata.CreatedAt
		}
		if created != "" {
			fmt.Printf("%-20s %s (created %s)\n", sb.Name, origin, created)
		} else {
			fmt.Printf("%-20s %s\n", sb.Name, origin)
		}
	}

	return nil
}
