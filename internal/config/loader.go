package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source indicates where a resolved config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceProject Source = "project"
	SourceEnv     Source = "env"
)

// TrackedConfig wraps a Config with per-field source tracking, trimmed
// from the teacher's system/user/project/env layering down to
// project+env, since renamify has no system- or user-wide config tier.
type TrackedConfig struct {
	Config  *Config
	Sources map[string]Source
}

func newTracked() *TrackedConfig {
	return &TrackedConfig{Config: Default(), Sources: map[string]Source{}}
}

// LoadWithSources resolves config for a repository at root: defaults,
// then .renamify/config.yaml if present, then RENAMIFY_* environment
// variables.
func LoadWithSources(root string) (*TrackedConfig, error) {
	tc := newTracked()
	for k := range structFields(tc.Config) {
		tc.Sources[k] = SourceDefault
	}

	projectPath := filepath.Join(root, ConfigDir, ConfigFileName)
	if _, err := os.Stat(projectPath); err == nil {
		if err := mergeFromFile(tc, projectPath, SourceProject); err != nil {
			return nil, fmt.Errorf("load %s: %w", projectPath, err)
		}
	}

	applyEnvVars(tc)

	return tc, nil
}

func mergeFromFile(tc *TrackedConfig, path string, source Source) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return err
	}

	cfg := tc.Config
	if _, ok := raw["styles"]; ok {
		cfg.Styles = fileCfg.Styles
		tc.Sources["styles"] = source
	}
	if _, ok := raw["include_acronyms"]; ok {
		cfg.IncludeAcronyms = fileCfg.IncludeAcronyms
		tc.Sources["include_acronyms"] = source
	}
	if _, ok := raw["exclude_acronyms"]; ok {
		cfg.ExcludeAcronyms = fileCfg.ExcludeAcronyms
		tc.Sources["exclude_acronyms"] = source
	}
	if _, ok := raw["includes"]; ok {
		cfg.Includes = fileCfg.Includes
		tc.Sources["includes"] = source
	}
	if _, ok := raw["excludes"]; ok {
		cfg.Excludes = fileCfg.Excludes
		tc.Sources["excludes"] = source
	}
	if _, ok := raw["unrestricted"]; ok {
		cfg.Unrestricted = fileCfg.Unrestricted
		tc.Sources["unrestricted"] = source
	}
	if _, ok := raw["ignore_ambiguous"]; ok {
		cfg.IgnoreAmbiguous = fileCfg.IgnoreAmbiguous
		tc.Sources["ignore_ambiguous"] = source
	}
	if _, ok := raw["large_files_threshold"]; ok {
		cfg.LargeFilesThreshold = fileCfg.LargeFilesThreshold
		tc.Sources["large_files_threshold"] = source
	}
	if _, ok := raw["large_rename_threshold"]; ok {
		cfg.LargeRenameThreshold = fileCfg.LargeRenameThreshold
		tc.Sources["large_rename_threshold"] = source
	}
	if _, ok := raw["backup_dir"]; ok {
		cfg.BackupDir = fileCfg.BackupDir
		tc.Sources["backup_dir"] = source
	}
	if _, ok := raw["max_history_entries"]; ok {
		cfg.MaxHistoryEntries = fileCfg.MaxHistoryEntries
		tc.Sources["max_history_entries"] = source
	}
	return nil
}

// applyEnvVars overrides settings from RENAMIFY_* environment variables,
// the same override tier the teacher's ApplyEnvVars occupies.
func applyEnvVars(tc *TrackedConfig) {
	cfg := tc.Config
	if v := os.Getenv("RENAMIFY_STYLES"); v != "" {
		cfg.Styles = strings.Split(v, ",")
		tc.Sources["styles"] = SourceEnv
	}
	if v := os.Getenv("RENAMIFY_IGNORE_AMBIGUOUS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.IgnoreAmbiguous = b
			tc.Sources["ignore_ambiguous"] = SourceEnv
		}
	}
	if v := os.Getenv("RENAMIFY_BACKUP_DIR"); v != "" {
		cfg.BackupDir = v
		tc.Sources["backup_dir"] = SourceEnv
	}
}

func structFields(cfg *Config) map[string]struct{} {
	return map[string]struct{}{
		"styles": {}, "include_acronyms": {}, "exclude_acronyms": {},
		"includes": {}, "excludes": {}, "unrestricted": {},
		"ignore_ambiguous": {}, "large_files_threshold": {},
		"large_rename_threshold": {}, "backup_dir": {}, "max_history_entries": {},
	}
}
