package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renamify/renamify/internal/renamify"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past rename operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			entries, err := renamify.History(root)
			if err != nil {
				return err
			}

			if limit > 0 && limit < len(entries) {
				entries = entries[len(entries)-limit:]
			}

			for _, e := range entries {
				kind := "apply"
				switch {
				case e.RevertOf != nil:
					kind = "undo of " + *e.RevertOf
				case e.RedoOf != nil:
					kind = "redo of " + *e.RedoOf
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s -> %s  (%s)\n",
					e.ID, e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), e.Search, e.Replace, kind)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the N most recent entries")
	return cmd
}
