package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/renamify/renamify/internal/renamify"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find identifier occurrences and matching paths without changing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			opts, err := resolveOptions(root)
			if err != nil {
				return err
			}

			// search is a read-only preview: replace with the search term
			// itself so the scanner reports occurrences without proposing
			// any rewrite.
			plan, err := renamify.Search(root, args[0], args[0], opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d matches across %d files, %d path candidates\n",
				plan.Stats.TotalMatches, plan.Stats.FilesWithMatches, len(plan.Paths))
			return nil
		},
	}
}
