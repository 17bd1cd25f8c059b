// Package scan implements C7: the repository scanner that turns a root
// path, a variant map, and a set of walk options into a deterministic Plan.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// UnrestrictedLevel controls how much the walker ignores, per spec.md §4.7:
// 0 honors .gitignore and local ignore files, 1 drops only .gitignore, 2
// also shows hidden files/directories, 3 additionally treats binary files
// as text during scanning (handled by the scanner, not the walker).
type UnrestrictedLevel int

const (
	UnrestrictedNone   UnrestrictedLevel = 0
	UnrestrictedNoGit  UnrestrictedLevel = 1
	UnrestrictedHidden UnrestrictedLevel = 2
	UnrestrictedBinary UnrestrictedLevel = 3
)

// Entry is one file or directory discovered by the walker.
type Entry struct {
	Path  string // relative to root, forward-slash separated
	IsDir bool
}

// Walker discovers candidate files and directories under a root,
// respecting .gitignore (unless suppressed), include/exclude globs, and
// hidden-file visibility.
type Walker struct {
	Root              string
	Includes          []string
	Excludes          []string
	UnrestrictedLevel UnrestrictedLevel
}

// Walk returns every file and directory under w.Root in deterministic
// (sorted-by-name per directory) order, per spec.md §9.
func (w *Walker) Walk() ([]Entry, error) {
	var entries []Entry
	ignoreCache := map[string]*gitignore.GitIgnore{}

	var visit func(dir string) error
	visit = func(dir string) error {
		names, err := readDirSorted(dir)
		if err != nil {
			return err
		}

		var ign *gitignore.GitIgnore
		if w.UnrestrictedLevel < UnrestrictedNoGit {
			ign = w.loadIgnore(dir, ignoreCache)
		}

		for _, name := range names {
			if w.UnrestrictedLevel < UnrestrictedHidden && strings.HasPrefix(name, ".") && name != "." && name != ".." {
				continue
			}

			full := filepath.Join(dir, name)
			rel, err := filepath.Rel(w.Root, full)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			info, err := os.Lstat(full)
			if err != nil {
				continue // vanished between readdir and lstat
			}

			if ign != nil && ign.MatchesPath(rel) {
				continue
			}
			if !w.included(rel, info.IsDir()) {
				if info.IsDir() {
					continue
				}
				continue
			}

			entries = append(entries, Entry{Path: rel, IsDir: info.IsDir()})

			if info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
				if err := visit(full); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := visit(w.Root); err != nil {
		return nil, err
	}
	return entries, nil
}

func readDirSorted(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (w *Walker) loadIgnore(dir string, cache map[string]*gitignore.GitIgnore) *gitignore.GitIgnore {
	if ign, ok := cache[dir]; ok {
		return ign
	}
	path := filepath.Join(dir, ".gitignore")
	ign, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		ign = nil
	}
	cache[dir] = ign
	return ign
}

// included reports whether rel passes the include/exclude glob filters. An
// empty Includes list matches everything; any Excludes match rejects.
func (w *Walker) included(rel string, isDir bool) bool {
	for _, pattern := range w.Excludes {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return false
		}
	}
	if len(w.Includes) == 0 {
		return true
	}
	if isDir {
		// Directories always traverse so files beneath them get a chance
		// to match; the include filter only prunes files.
		return true
	}
	for _, pattern := range w.Includes {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
