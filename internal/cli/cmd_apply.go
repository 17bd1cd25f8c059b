package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	renamifyerrors "github.com/renamify/renamify/internal/errors"
	"github.com/renamify/renamify/internal/lock"
	"github.com/renamify/renamify/internal/renamify"
)

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply [plan-path]",
		Short: "Apply a previously generated Plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoRoot()
			if err != nil {
				return err
			}
			done := installSignalHandler(root)
			defer close(done)

			guard := lock.NewGuard(root)
			if err := guard.Check(); err != nil {
				return err
			}
			if err := guard.Acquire(); err != nil {
				return err
			}
			defer guard.Release()

			plan, err := loadPlanFile(root)
			if err != nil {
				return err
			}

			opts, err := resolveOptions(root)
			if err != nil {
				return err
			}

			if !autoConfirm() {
				ok, err := confirm(cmd, fmt.Sprintf("Apply plan %s", plan.ID))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			res, err := renamify.ApplyPlan(root, plan, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied plan %s: %d files patched, %d renames\n",
				plan.ID, len(res.Files), len(res.Renames))
			return nil
		},
	}
}

// confirm prompts the user with a y/N question unless --yes or
// RENAMIFY_YES=1 already answered it, per spec.md §6. It refuses to block
// on a prompt that can never be answered when stdin isn't a terminal.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if !isInteractive() {
		return false, renamifyerrors.ErrNonInteractive()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
