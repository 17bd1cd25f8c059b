// Package ambiguity implements C11: resolving a match compatible with more
// than one active naming style down to a single style, using file-context
// statistics, cross-file keyword context, and per-language heuristics.
package ambiguity

import (
	"sync"

	"github.com/renamify/renamify/internal/ident"
)

const (
	minIdentifiersForStats = 50
	mediumConfidence       = 0.40
)

// Context carries the per-match information the resolver needs to pick
// among candidate styles.
type Context struct {
	FilePath         string
	Extension        string // normalized, lowercase, with leading dot ("." + ext)
	PrecedingKeyword string
	IgnoreAmbiguous  bool
}

type crossFileTally struct {
	counts map[ident.Style]int
}

// Resolver accumulates file-level and project-level statistics across a
// scan and uses them to disambiguate matches that satisfy more than one
// active style's case constraint.
type Resolver struct {
	mu           sync.Mutex
	fileDominant map[string]ident.Style
	fileVisited  map[string]bool
	crossFile    map[string]crossFileTally
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{
		fileDominant: make(map[string]ident.Style),
		fileVisited:  make(map[string]bool),
		crossFile:    make(map[string]crossFileTally),
	}
}

// AnalyzeFile computes and caches the dominant naming style among an
// unambiguous sample of identifiers found in the file, per spec.md §4.11
// step 1. identifiers should be every identifier the scanner classified
// under exactly one style via ident.DetectStyle; callers filter before
// calling, or may pass raw text and rely on DetectStyle's own rejection of
// ambiguous/mixed text. A file is analyzed only once; later calls are
// no-ops.
func (r *Resolver) AnalyzeFile(path string, identifiers []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fileVisited[path] {
		return
	}
	r.fileVisited[path] = true

	counts := map[ident.Style]int{}
	total := 0
	for _, id := range identifiers {
		style, ok := ident.DetectStyle(id)
		if !ok {
			continue
		}
		counts[style]++
		total++
	}
	if total < minIdentifiersForStats {
		return
	}

	best, bestCount := ident.Style(0), 0
	for s, c := range counts {
		if c > bestCount {
			best, bestCount = s, c
		}
	}
	if float64(bestCount)/float64(total) >= mediumConfidence {
		r.fileDominant[path] = best
	}
}

// RecordKeyword tallies an observed (extension, keyword) -> style
// occurrence for cross-file context, per spec.md §4.11 step 2.
func (r *Resolver) RecordKeyword(ext, keyword string, style ident.Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := crossFileKey(ext, keyword)
	t, ok := r.crossFile[key]
	if !ok {
		t = crossFileTally{counts: make(map[ident.Style]int)}
	}
	t.counts[style]++
	r.crossFile[key] = t
}

func crossFileKey(ext, keyword string) string {
	return ext + "\x00" + keyword
}

func (r *Resolver) crossFileDominant(ext, keyword string) (ident.Style, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.crossFile[crossFileKey(ext, keyword)]
	if !ok || len(t.counts) == 0 {
		return 0, false
	}
	best, bestCount, total := ident.Style(0), 0, 0
	for s, c := range t.counts {
		total += c
		if c > bestCount {
			best, bestCount = s, c
		}
	}
	if float64(bestCount)/float64(total) < mediumConfidence {
		return 0, false
	}
	return best, true
}

// Resolve picks one style from candidates (those compatible with the
// matched text under C4) using, in order: file-context statistics,
// cross-file keyword context, language heuristics, and finally either
// dropping the match (when IgnoreAmbiguous is set) or falling back to the
// alphabetically-first candidate for determinism, per spec.md §4.11.
func (r *Resolver) Resolve(candidates []ident.Style, ctx Context) (ident.Style, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	if dominant, ok := r.fileDominantStyle(ctx.FilePath); ok && styleIn(dominant, candidates) {
		return dominant, true
	}

	if ctx.PrecedingKeyword != "" {
		if style, ok := r.crossFileDominant(ctx.Extension, ctx.PrecedingKeyword); ok && styleIn(style, candidates) {
			return style, true
		}
		if style, ok := LanguageStyle(ctx.Extension, ctx.PrecedingKeyword); ok && styleIn(style, candidates) {
			return style, true
		}
	}

	if style, ok := LanguageDefault(ctx.Extension); ok && styleIn(style, candidates) {
		return style, true
	}

	if ctx.IgnoreAmbiguous {
		return 0, false
	}
	return alphabeticallyFirst(candidates), true
}

func (r *Resolver) fileDominantStyle(path string) (ident.Style, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.fileDominant[path]
	return s, ok
}

func styleIn(s ident.Style, candidates []ident.Style) bool {
	for _, c := range candidates {
		if c == s {
			return true
		}
	}
	return false
}

// alphabeticallyFirst returns the candidate whose canonical CLI name sorts
// first, giving a deterministic fallback independent of map iteration
// order or candidate slice order.
func alphabeticallyFirst(candidates []ident.Style) ident.Style {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.String() < best.String() {
			best = c
		}
	}
	return best
}
