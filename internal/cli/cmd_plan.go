package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/renamify/renamify/internal/planmodel"
	"github.com/renamify/renamify/internal/renamify"
	"github.com/renamify/renamify/internal/util"
)

// defaultPlanPath is the plan.json location written by `plan` and read by
// a bare `apply`, per spec.md §6's repository layout.
func defaultPlanPath(root string) string {
	return filepath.Join(root, ".renamify", "plan.json")
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan <search> <replace>",
		Short: "Generate and save a Plan without applying it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			opts, err := resolveOptions(root)
			if err != nil {
				return err
			}

			plan, err := renamify.Plan(root, args[0], args[1], opts)
			if err != nil {
				return err
			}

			data, err := plan.ToJSON()
			if err != nil {
				return err
			}
			if err := util.AtomicWriteFile(defaultPlanPath(root), data, 0644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Plan %s: %d matches, %d renames. Written to %s\n",
				plan.ID, plan.Stats.TotalMatches, len(plan.Paths), defaultPlanPath(root))
			return nil
		},
	}
}

func loadPlanFile(root string) (*planmodel.Plan, error) {
	data, err := readFile(defaultPlanPath(root))
	if err != nil {
		return nil, err
	}
	return planmodel.FromJSON(data)
}
