// Package config resolves the final Options structs the core packages
// consume (active styles, acronym overrides, walker flags) from layered
// sources: built-in defaults, an optional project-local
// .renamify/config.yaml, and environment variables.
package config

// Config is the project-local subset of settings renamify reads from
// .renamify/config.yaml. The file format itself is a thin convenience
// layer over CLI flags, not a first-class feature.
type Config struct {
	Styles               []string `yaml:"styles"`
	IncludeAcronyms      []string `yaml:"include_acronyms"`
	ExcludeAcronyms      []string `yaml:"exclude_acronyms"`
	Includes             []string `yaml:"includes"`
	Excludes             []string `yaml:"excludes"`
	Unrestricted         int      `yaml:"unrestricted"`
	IgnoreAmbiguous      bool     `yaml:"ignore_ambiguous"`
	LargeFilesThreshold  int      `yaml:"large_files_threshold"`
	LargeRenameThreshold int      `yaml:"large_rename_threshold"`
	BackupDir            string   `yaml:"backup_dir"`
	MaxHistoryEntries    int      `yaml:"max_history_entries"`
}

// ConfigDir is the project-local directory holding renamify's state and
// optional config file.
const ConfigDir = ".renamify"

// ConfigFileName is the optional project-local config file's name.
const ConfigFileName = "config.yaml"

// Default returns renamify's built-in defaults.
func Default() *Config {
	return &Config{
		Styles:               []string{"snake", "kebab", "camel", "pascal", "screaming-snake"},
		Unrestricted:         0,
		IgnoreAmbiguous:      false,
		LargeFilesThreshold:  500,
		LargeRenameThreshold: 100,
		BackupDir:            ".renamify/backups",
		MaxHistoryEntries:    100,
	}
}
