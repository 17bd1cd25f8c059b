// Package renamify is the facade wiring C1-C11 into the high-level
// operations the CLI and tests call: Search, Plan, Rename, Apply, Undo,
// and Redo.
package renamify

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/apply"
	renamifyerrors "github.com/renamify/renamify/internal/errors"
	"github.com/renamify/renamify/internal/history"
	"github.com/renamify/renamify/internal/ident"
	"github.com/renamify/renamify/internal/lock"
	"github.com/renamify/renamify/internal/planmodel"
	"github.com/renamify/renamify/internal/scan"
	"github.com/renamify/renamify/internal/variant"
)

// Options collects every flag-driven knob across the scan, apply, and
// safety layers into one struct for the facade's entry points.
type Options struct {
	Styles             []string
	IncludeAcronyms    []string
	ExcludeAcronyms    []string
	OnlyAcronyms       []string
	DisableAcronyms    bool
	Includes           []string
	Excludes           []string
	UnrestrictedLevel  scan.UnrestrictedLevel
	ExcludeMatch       []string
	AtomicSearch       bool
	AtomicReplace      bool
	RenameFiles        bool
	RenameDirs         bool
	RenameRoot         bool
	IgnoreAmbiguous    bool
	ForceWithConflicts bool
	Commit             bool
	SkipSymlinks       bool
	Large              bool
	BackupDir          string
	MaxHistoryEntries  int
}

// DefaultOptions mirrors scan.DefaultOptions with the facade's broader
// flag surface.
func DefaultOptions() Options {
	return Options{
		Styles:       []string{"snake", "kebab", "camel", "pascal", "screaming-snake"},
		RenameFiles:  true,
		RenameDirs:   true,
		SkipSymlinks: true,
	}
}

// LargeFilesThreshold and LargeRenameThreshold gate the --large safety
// check, per spec.md §6.
const (
	LargeFilesThreshold  = 500
	LargeRenameThreshold = 100
)

func resolveStyles(names []string) ([]ident.Style, error) {
	var styles []ident.Style
	for _, name := range names {
		s, ok := ident.ParseStyle(name)
		if !ok {
			return nil, renamifyerrors.ErrInvalidStyle(name)
		}
		styles = append(styles, s)
	}
	return styles, nil
}

func resolveAcronyms(opts Options) *acronym.Set {
	set := acronym.Default()
	if opts.DisableAcronyms {
		return set.Disable()
	}
	if len(opts.OnlyAcronyms) > 0 {
		set = set.Only(opts.OnlyAcronyms)
	}
	if len(opts.IncludeAcronyms) > 0 {
		set = set.Include(opts.IncludeAcronyms)
	}
	if len(opts.ExcludeAcronyms) > 0 {
		set = set.Exclude(opts.ExcludeAcronyms)
	}
	return set
}

func buildScanner(root, search, replace string, opts Options) (*scan.Scanner, error) {
	styles, err := resolveStyles(opts.Styles)
	if err != nil {
		return nil, err
	}
	set := resolveAcronyms(opts)
	vm := variant.Generate(search, replace, styles, set, variant.Options{
		AtomicSearch:  opts.AtomicSearch,
		AtomicReplace: opts.AtomicReplace,
	})

	scanOpts := scan.DefaultOptions()
	scanOpts.Includes = opts.Includes
	scanOpts.Excludes = opts.Excludes
	scanOpts.UnrestrictedLevel = opts.UnrestrictedLevel
	scanOpts.RenameFiles = opts.RenameFiles
	scanOpts.RenameDirs = opts.RenameDirs
	scanOpts.RenameRoot = opts.RenameRoot
	scanOpts.IgnoreAmbiguous = opts.IgnoreAmbiguous
	scanOpts.ForceWithConflicts = opts.ForceWithConflicts
	scanOpts.ExcludeMatch = opts.ExcludeMatch

	return scan.New(root, search, replace, styles, set, vm, scanOpts), nil
}

// checkLargePlan enforces spec.md §6's safety threshold: a plan touching
// more than 500 files or 100 renames needs --large.
func checkLargePlan(plan *planmodel.Plan, large bool) error {
	if large {
		return nil
	}
	if plan.Stats.FilesWithMatches > LargeFilesThreshold || len(plan.Paths) > LargeRenameThreshold {
		return renamifyerrors.ErrLargeChange(plan.Stats.FilesWithMatches, len(plan.Paths))
	}
	return nil
}

// Search produces a Plan without applying it. Equivalent to `renamify
// plan`/`renamify search` in the CLI.
func Search(root, search, replace string, opts Options) (*planmodel.Plan, error) {
	s, err := buildScanner(root, search, replace, opts)
	if err != nil {
		return nil, err
	}
	return s.Scan()
}

// Plan is an alias for Search kept for symmetry with the CLI's `plan`
// subcommand naming.
func Plan(root, search, replace string, opts Options) (*planmodel.Plan, error) {
	return Search(root, search, replace, opts)
}

// Rename scans, checks safety thresholds, applies, and records history in
// one operation, equivalent to `renamify rename`.
func Rename(root, search, replace string, opts Options) (*planmodel.Plan, *apply.Result, error) {
	guard := lock.NewGuard(root)
	if err := guard.Check(); err != nil {
		return nil, nil, err
	}
	if err := guard.Acquire(); err != nil {
		return nil, nil, err
	}
	defer guard.Release()

	plan, err := Search(root, search, replace, opts)
	if err != nil {
		return nil, nil, err
	}
	if plan.Stats.TotalMatches == 0 && len(plan.Paths) == 0 {
		slog.Info("renamify: nothing to do", "search", search, "replace", replace)
		return plan, nil, nil
	}
	if err := checkLargePlan(plan, opts.Large); err != nil {
		return plan, nil, err
	}

	res, err := ApplyPlan(root, plan, opts)
	if err != nil {
		return plan, nil, err
	}
	return plan, res, nil
}

// ApplyPlan executes a previously generated Plan and records a
// HistoryEntry, equivalent to `renamify apply`.
func ApplyPlan(root string, plan *planmodel.Plan, opts Options) (*apply.Result, error) {
	backupDir := opts.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(root, ".renamify", "backups")
	}

	a := apply.New(root, apply.Options{
		BackupDir:    backupDir,
		Commit:       opts.Commit,
		Force:        opts.ForceWithConflicts,
		SkipSymlinks: opts.SkipSymlinks,
	})
	res, err := a.Apply(plan)
	if err != nil {
		return nil, err
	}

	mgr := historyManager(root, backupDir)
	if _, err := mgr.RecordApply(plan, res); err != nil {
		return res, err
	}

	maxEntries := opts.MaxHistoryEntries
	if maxEntries > 0 {
		if err := mgr.Prune(maxEntries); err != nil {
			slog.Warn("renamify: history prune failed", "error", err)
		}
	}

	return res, nil
}

// Undo reverses a previously applied plan (or "latest"), equivalent to
// `renamify undo`.
func Undo(root, id string, force bool) (*history.HistoryEntry, error) {
	guard := lock.NewGuard(root)
	if err := guard.Check(); err != nil {
		return nil, err
	}
	if err := guard.Acquire(); err != nil {
		return nil, err
	}
	defer guard.Release()

	mgr := historyManager(root, "")
	return mgr.Undo(id, force)
}

// Redo re-applies a previously undone plan (or "latest"), equivalent to
// `renamify redo`.
func Redo(root, id string, force bool) (*history.HistoryEntry, error) {
	guard := lock.NewGuard(root)
	if err := guard.Check(); err != nil {
		return nil, err
	}
	if err := guard.Acquire(); err != nil {
		return nil, err
	}
	defer guard.Release()

	mgr := historyManager(root, "")
	return mgr.Redo(id, force)
}

// History lists the repository's history log, equivalent to `renamify
// history`.
func History(root string) ([]history.HistoryEntry, error) {
	return historyManager(root, "").List()
}

func historyManager(root, backupDir string) *history.Manager {
	if backupDir == "" {
		backupDir = filepath.Join(root, ".renamify", "backups")
	}
	return history.NewManager(root, backupDir)
}

// EnsureInitialized creates the .renamify state directory, equivalent to
// `renamify init`.
func EnsureInitialized(root string) error {
	return os.MkdirAll(filepath.Join(root, ".renamify"), 0755)
}
