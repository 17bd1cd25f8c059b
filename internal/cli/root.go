// Package cli implements the renamify command-line interface.
package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	groupCore    = "core"
	groupHistory = "history"
	groupInfo    = "info"
)

var (
	flagInclude            []string
	flagExclude             []string
	flagOnlyStyles          []string
	flagIncludeStyles       []string
	flagExcludeStyles       []string
	flagIgnoreAmbiguous     bool
	flagNoAcronyms          bool
	flagIncludeAcronyms     []string
	flagExcludeAcronyms     []string
	flagOnlyAcronyms        []string
	flagExcludeMatch        []string
	flagExcludeMatchingLines string
	flagAtomic              bool
	flagAtomicSearch        bool
	flagAtomicReplace       bool
	flagNoRenameFiles       bool
	flagNoRenameDirs        bool
	flagRenameRoot          bool
	flagNoRenameRoot        bool
	flagCommit              bool
	flagLarge               bool
	flagForceWithConflicts  bool
	flagDryRun              bool
	flagYes                 bool
)

var rootCmd = &cobra.Command{
	Use:   "renamify",
	Short: "Case-aware, identifier-sensitive search-and-replace for source repositories",
	Long: `renamify renames identifiers, their case-variants, and matching file paths
across a repository in one atomic operation.

Quick start:
  renamify init                       Initialize .renamify in the current repo
  renamify plan old_name new_name      Preview a rename as a Plan
  renamify rename old_name new_name    Apply a rename in one step
  renamify undo latest                 Revert the most recent rename`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// useColor reports whether ANSI output should be emitted, honoring
// NO_COLOR and a non-terminal stdout, per spec.md §6.
func useColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// autoConfirm reports whether prompts should be auto-confirmed, via
// either --yes or RENAMIFY_YES=1.
func autoConfirm() bool {
	return flagYes || os.Getenv("RENAMIFY_YES") == "1"
}

// isInteractive reports whether stdin is attached to a terminal. Mutating
// commands refuse to block on a confirmation prompt that can never be
// answered, per spec.md §6's non-TTY-without---yes safety rule.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: groupCore, Title: "Core Commands:"},
		&cobra.Group{ID: groupHistory, Title: "History:"},
		&cobra.Group{ID: groupInfo, Title: "Info:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringSliceVar(&flagInclude, "include", nil, "glob patterns to include")
	pf.StringSliceVar(&flagExclude, "exclude", nil, "glob patterns to exclude")
	pf.CountVarP(&flagUnrestrictedCount, "unrestricted", "u", "relax gitignore/hidden/binary restrictions (repeatable up to 3)")
	pf.StringSliceVar(&flagOnlyStyles, "only-styles", nil, "use only these styles")
	pf.StringSliceVar(&flagIncludeStyles, "include-styles", nil, "add these styles to the defaults")
	pf.StringSliceVar(&flagExcludeStyles, "exclude-styles", nil, "remove these styles from the defaults")
	pf.BoolVar(&flagIgnoreAmbiguous, "ignore-ambiguous", false, "drop matches the ambiguity resolver can't decide")
	pf.BoolVar(&flagNoAcronyms, "no-acronyms", false, "disable the acronym set entirely")
	pf.StringSliceVar(&flagIncludeAcronyms, "include-acronyms", nil, "add acronyms to the default set")
	pf.StringSliceVar(&flagExcludeAcronyms, "exclude-acronyms", nil, "remove acronyms from the default set")
	pf.StringSliceVar(&flagOnlyAcronyms, "only-acronyms", nil, "use only these acronyms")
	pf.StringSliceVar(&flagExcludeMatch, "exclude-match", nil, "variant keys to skip entirely")
	pf.StringVar(&flagExcludeMatchingLines, "exclude-matching-lines", "", "regex of lines to leave untouched; the value is not passed to the scanner, so it has no effect")
	pf.BoolVar(&flagAtomic, "atomic", false, "treat both search and replace as single opaque tokens, skipping tokenization")
	pf.BoolVar(&flagAtomicSearch, "atomic-search", false, "treat search as a single opaque token")
	pf.BoolVar(&flagAtomicReplace, "atomic-replace", false, "treat replace as a single opaque token")
	pf.BoolVar(&flagNoRenameFiles, "no-rename-files", false, "don't rename files")
	pf.BoolVar(&flagNoRenameDirs, "no-rename-dirs", false, "don't rename directories")
	pf.BoolVar(&flagRenameRoot, "rename-root", false, "allow renaming the repository root directory")
	pf.BoolVar(&flagNoRenameRoot, "no-rename-root", false, "never rename the repository root directory")
	pf.BoolVar(&flagCommit, "commit", false, "git commit after a successful apply")
	pf.BoolVar(&flagLarge, "large", false, "acknowledge a plan exceeding the safety threshold")
	pf.BoolVar(&flagForceWithConflicts, "force-with-conflicts", false, "proceed despite rename collisions")
	pf.BoolVar(&flagDryRun, "dry-run", false, "rename: show the plan without applying it (other commands ignore this flag)")
	pf.BoolVar(&flagYes, "yes", false, "auto-confirm prompts")

	addCmd(newInitCmd(), groupCore)
	addCmd(newSearchCmd(), groupCore)
	addCmd(newPlanCmd(), groupCore)
	addCmd(newRenameCmd(), groupCore)
	addCmd(newApplyCmd(), groupCore)
	addCmd(newReplaceCmd(), groupCore)

	addCmd(newUndoCmd(), groupHistory)
	addCmd(newRedoCmd(), groupHistory)
	addCmd(newHistoryCmd(), groupHistory)

	addCmd(newStatusCmd(), groupInfo)
	addCmd(newVersionCmd(), groupInfo)
}

// flagUnrestrictedCount backs the repeatable -u/--unrestricted flag; its
// value is clamped to 0..3 by clampUnrestricted in resolveOptions.
var flagUnrestrictedCount int

func addCmd(cmd *cobra.Command, groupID string) {
	cmd.GroupID = groupID
	rootCmd.AddCommand(cmd)
}
