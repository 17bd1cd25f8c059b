package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/renamify/renamify/internal/lock"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a renamify operation is in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}

			if _, err := os.Stat(filepath.Join(root, ".renamify")); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not initialized. Run 'renamify init'.")
				return nil
			}

			guard := lock.NewGuard(root)
			if err := guard.Check(); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Locked:", err)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Idle. No operation in progress.")
			return nil
		},
	}
}
