package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renamify/renamify/internal/renamify"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize .renamify in the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			if err := renamify.EnsureInitialized(root); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Initialized .renamify/")
			return nil
		},
	}
}
