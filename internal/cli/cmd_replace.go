package cli

import (
	"github.com/spf13/cobra"

	renamifyerrors "github.com/renamify/renamify/internal/errors"
)

// newReplaceCmd registers `replace` only to give it a helpful error:
// arbitrary-pattern replacement (as opposed to identifier-aware rename)
// is explicitly out of scope.
func newReplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "replace <pattern> <repl>",
		Short:  "Not implemented: use 'rename' for identifier-aware replacement",
		Hidden: true,
		Args:   cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (&renamifyerrors.Error{
				Code: "NOT_IMPLEMENTED",
				What: "'replace' (arbitrary pattern substitution) is out of scope",
				Why:  "renamify only performs identifier-aware, case-variant-sensitive renames",
				Fix:  "use 'renamify rename <search> <replace>' instead",
			})
		},
	}
}
