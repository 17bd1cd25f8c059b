package cli

import (
	"github.com/renamify/renamify/internal/config"
	"github.com/renamify/renamify/internal/renamify"
	"github.com/renamify/renamify/internal/scan"
)

// resolveOptions merges the project config file, RENAMIFY_* env vars, and
// CLI flags into one renamify.Options, CLI flags taking final precedence.
func resolveOptions(root string) (renamify.Options, error) {
	tc, err := config.LoadWithSources(root)
	if err != nil {
		return renamify.Options{}, err
	}
	cfg := tc.Config

	opts := renamify.DefaultOptions()
	opts.Styles = resolveStyleFlags(cfg.Styles)
	opts.Includes = mergeStrings(cfg.Includes, flagInclude)
	opts.Excludes = mergeStrings(cfg.Excludes, flagExclude)
	opts.UnrestrictedLevel = scan.UnrestrictedLevel(clampUnrestricted(flagUnrestrictedCount, cfg.Unrestricted))
	opts.IgnoreAmbiguous = cfg.IgnoreAmbiguous || flagIgnoreAmbiguous
	opts.RenameFiles = !flagNoRenameFiles
	opts.RenameDirs = !flagNoRenameDirs
	opts.RenameRoot = flagRenameRoot && !flagNoRenameRoot
	opts.ForceWithConflicts = flagForceWithConflicts
	opts.Commit = flagCommit
	opts.Large = flagLarge
	opts.BackupDir = cfg.BackupDir
	opts.MaxHistoryEntries = cfg.MaxHistoryEntries

	opts.IncludeAcronyms = mergeStrings(cfg.IncludeAcronyms, flagIncludeAcronyms)
	opts.ExcludeAcronyms = mergeStrings(cfg.ExcludeAcronyms, flagExcludeAcronyms)
	opts.OnlyAcronyms = flagOnlyAcronyms
	opts.DisableAcronyms = flagNoAcronyms
	if flagNoAcronyms {
		opts.ExcludeAcronyms = nil
		opts.IncludeAcronyms = nil
		opts.OnlyAcronyms = nil
	}

	opts.ExcludeMatch = flagExcludeMatch
	opts.AtomicSearch = flagAtomic || flagAtomicSearch
	opts.AtomicReplace = flagAtomic || flagAtomicReplace

	return opts, nil
}

// resolveStyleFlags applies --only-styles / --include-styles /
// --exclude-styles over the configured default style list.
func resolveStyleFlags(defaults []string) []string {
	if len(flagOnlyStyles) > 0 {
		return flagOnlyStyles
	}
	styles := append([]string(nil), defaults...)
	styles = append(styles, flagIncludeStyles...)
	if len(flagExcludeStyles) == 0 {
		return styles
	}
	excluded := map[string]bool{}
	for _, s := range flagExcludeStyles {
		excluded[s] = true
	}
	var out []string
	for _, s := range styles {
		if !excluded[s] {
			out = append(out, s)
		}
	}
	return out
}

func mergeStrings(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	return append(append([]string(nil), base...), extra...)
}

func clampUnrestricted(flagCount, configLevel int) int {
	level := configLevel
	if flagCount > level {
		level = flagCount
	}
	if level > 3 {
		level = 3
	}
	if level < 0 {
		level = 0
	}
	return level
}
