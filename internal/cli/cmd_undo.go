package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renamify/renamify/internal/renamify"
)

func newUndoCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "undo <id|latest>",
		Short: "Revert a previously applied rename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			entry, err := renamify.Undo(root, args[0], force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reverted %s (%d files, %d renames)\n",
				*entry.RevertOf, len(entry.AffectedFiles), len(entry.Renames))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "proceed even if affected files changed since the recorded checksum")
	return cmd
}

func newRedoCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "redo <id|latest>",
		Short: "Re-apply a previously undone rename",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			entry, err := renamify.Redo(root, args[0], force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Redid %s (%d files, %d renames)\n",
				*entry.RedoOf, len(entry.AffectedFiles), len(entry.Renames))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "proceed even if affected files changed since the recorded checksum")
	return cmd
}
