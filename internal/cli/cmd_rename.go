package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renamify/renamify/internal/renamify"
)

func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <search> <replace>",
		Short: "Scan and apply a rename in one step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			done := installSignalHandler(root)
			defer close(done)

			opts, err := resolveOptions(root)
			if err != nil {
				return err
			}

			if flagDryRun {
				plan, err := renamify.Plan(root, args[0], args[1], opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d matches, %d renames would be applied\n",
					plan.Stats.TotalMatches, len(plan.Paths))
				return nil
			}

			if !autoConfirm() {
				ok, err := confirm(cmd, fmt.Sprintf("Rename %q -> %q", args[0], args[1]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			plan, res, err := renamify.Rename(root, args[0], args[1], opts)
			if err != nil {
				return err
			}
			if res == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied plan %s: %d files patched, %d renames\n",
				plan.ID, len(res.Files), len(res.Renames))
			return nil
		},
	}
}
