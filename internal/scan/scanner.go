package scan

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/ambiguity"
	"github.com/renamify/renamify/internal/compound"
	renamifyerrors "github.com/renamify/renamify/internal/errors"
	"github.com/renamify/renamify/internal/ident"
	"github.com/renamify/renamify/internal/match"
	"github.com/renamify/renamify/internal/planmodel"
	"github.com/renamify/renamify/internal/variant"
)

// Options threads the CLI flags named in spec.md §6 into the scanner
// without the core depending on a flag-parsing library.
type Options struct {
	Includes             []string
	Excludes             []string
	UnrestrictedLevel    UnrestrictedLevel
	ExcludeMatchingLines *regexp.Regexp
	// ExcludeMatch lists variant keys that must never be matched, even
	// though the variant map would otherwise render and accept them.
	ExcludeMatch []string
	RenameFiles          bool
	RenameDirs           bool
	RenameRoot           bool
	IgnoreAmbiguous      bool
	ForceWithConflicts   bool
}

// DefaultOptions returns the scanner's default flag values.
func DefaultOptions() Options {
	return Options{RenameFiles: true, RenameDirs: true}
}

// Scanner runs C7 over a repository root using a precomputed variant map.
type Scanner struct {
	Root     string
	Search   string
	Replace  string
	Styles   []ident.Style
	Acronyms *acronym.Set
	VM       *variant.Map
	Resolver *ambiguity.Resolver
	Options  Options

	excludeMatch map[string]bool
}

// New creates a Scanner with its own ambiguity resolver.
func New(root, search, replace string, styles []ident.Style, set *acronym.Set, vm *variant.Map, opts Options) *Scanner {
	excludeMatch := make(map[string]bool, len(opts.ExcludeMatch))
	for _, k := range opts.ExcludeMatch {
		excludeMatch[k] = true
	}
	return &Scanner{
		Root:         root,
		Search:       search,
		Replace:      replace,
		Styles:       styles,
		Acronyms:     set,
		VM:           vm,
		Resolver:     ambiguity.New(),
		Options:      opts,
		excludeMatch: excludeMatch,
	}
}

// Scan walks the repository and produces a deterministic Plan.
func (s *Scanner) Scan() (*planmodel.Plan, error) {
	w := &Walker{
		Root:              s.Root,
		Includes:          s.Options.Includes,
		Excludes:          s.Options.Excludes,
		UnrestrictedLevel: s.Options.UnrestrictedLevel,
	}
	entries, err := w.Walk()
	if err != nil {
		return nil, err
	}

	plan := &planmodel.Plan{
		Search:   s.Search,
		Replace:  s.Replace,
		Styles:   styleNames(s.Styles),
		Includes: s.Options.Includes,
		Excludes: s.Options.Excludes,
		Version:  planmodel.Version,
	}

	var files []Entry
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, e)
		}
	}

	matcher := match.New(s.VM)
	searchTM := ident.Tokenize(s.Search, s.Acronyms)

	var (
		mu            sync.Mutex
		filesScanned  int
		matchesByFile = make(map[string][]planmodel.MatchHunk)
	)

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())

	for _, e := range files {
		e := e
		g.Go(func() error {
			full := filepath.Join(s.Root, filepath.FromSlash(e.Path))
			data, err := os.ReadFile(full)
			if err != nil {
				return nil // vanished between walk and read; skip
			}

			mu.Lock()
			filesScanned++
			mu.Unlock()

			if isBinary(data) && s.Options.UnrestrictedLevel < UnrestrictedBinary {
				return nil
			}

			hunks := s.scanFile(e.Path, data, matcher, searchTM)
			if len(hunks) == 0 {
				return nil
			}

			mu.Lock()
			matchesByFile[e.Path] = hunks
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	variantCounts := map[string]int{}
	filesWithMatches := 0
	for _, hunks := range matchesByFile {
		if len(hunks) > 0 {
			filesWithMatches++
		}
		plan.Matches = append(plan.Matches, hunks...)
		for _, h := range hunks {
			variantCounts[h.Variant]++
		}
	}

	renames, err := s.scanRenames(entries)
	if err != nil {
		return nil, err
	}
	plan.Paths = renames

	plan.Stats = planmodel.Stats{
		FilesScanned:     filesScanned,
		TotalMatches:     len(plan.Matches),
		MatchesByVariant: variantCounts,
		FilesWithMatches: filesWithMatches,
	}

	plan.Sort()
	return plan, nil
}

// scanFile implements spec.md §4.7 steps 1-5 for a single file's content.
func (s *Scanner) scanFile(relPath string, data []byte, matcher *match.Matcher, searchTM ident.TokenModel) []planmodel.MatchHunk {
	lineStarts := buildLineIndex(data)
	consumed := make([]bool, len(data))

	type accepted struct {
		start, end  int
		replacement string
		variant     string
	}
	var acc []accepted

	for _, m := range matcher.FindAll(data) {
		if s.excludeMatch[m.Key] {
			continue
		}
		entry, ok := s.VM.Lookup(m.Key)
		if !ok {
			continue
		}
		replacement := entry.Replacement

		if len(entry.Styles) > 1 {
			ext := strings.ToLower(filepath.Ext(relPath))
			style, ok := s.Resolver.Resolve(entry.Styles, ambiguity.Context{
				FilePath:        relPath,
				Extension:       ext,
				IgnoreAmbiguous: s.Options.IgnoreAmbiguous,
			})
			if !ok {
				continue
			}
			replacement = ident.Render(s.VM.ReplaceTM, style)
		}

		lineStart, lineEnd := lineBounds(data, m.Start)
		cStart, cEnd := compound.ContainerBounds(data[lineStart:lineEnd], m.Start-lineStart, m.End-lineStart)
		containerText := string(data[lineStart:lineEnd][cStart:cEnd])
		if coerced, applied := compound.Coerce(containerText, entry, s.VM.ReplaceTM); applied != "" {
			replacement = coerced
		}

		acc = append(acc, accepted{start: m.Start, end: m.End, replacement: replacement, variant: m.Key})
		for i := m.Start; i < m.End; i++ {
			consumed[i] = true
		}
	}

	replaceTM := ident.Tokenize(s.Replace, s.Acronyms)
	for _, seg := range compound.FindSegments(data) {
		if rangeConsumed(consumed, seg.Start, seg.End) || s.excludeMatch[seg.Text] {
			continue
		}
		rewritten, changed := compound.Rewrite(seg.Text, searchTM, replaceTM, s.Styles, s.Acronyms)
		if !changed {
			continue
		}
		acc = append(acc, accepted{start: seg.Start, end: seg.End, replacement: rewritten, variant: seg.Text})
		for i := seg.Start; i < seg.End; i++ {
			consumed[i] = true
		}
	}

	sort.Slice(acc, func(i, j int) bool { return acc[i].start < acc[j].start })

	var hunks []planmodel.MatchHunk
	for _, a := range acc {
		lineNo := lineNumber(lineStarts, a.start)
		lineStart, lineEnd := lineBounds(data, a.start)
		lineBefore := string(data[lineStart:lineEnd])

		if s.Options.ExcludeMatchingLines != nil && s.Options.ExcludeMatchingLines.MatchString(lineBefore) {
			continue
		}

		localStart := a.start - lineStart
		localEnd := a.end - lineStart
		lineAfter := lineBefore[:localStart] + a.replacement + lineBefore[localEnd:]

		lb, la := lineBefore, lineAfter
		hunks = append(hunks, planmodel.MatchHunk{
			File:       relPath,
			Line:       uint64(lineNo),
			ByteOffset: uint32(localStart),
			Variant:    a.variant,
			Content:    string(data[a.start:a.end]),
			Replace:    a.replacement,
			Start:      a.start,
			End:        a.end,
			LineBefore: &lb,
			LineAfter:  &la,
		})
	}

	return mergeLineAfters(hunks)
}

// mergeLineAfters implements spec.md §4.7 step 5's merge rule: multiple
// matches on the same line share one line_after, built by applying all of
// that line's rewrites right-to-left so earlier byte offsets stay valid.
func mergeLineAfters(hunks []planmodel.MatchHunk) []planmodel.MatchHunk {
	byLine := map[uint64][]int{}
	for i, h := range hunks {
		byLine[h.Line] = append(byLine[h.Line], i)
	}
	for _, idxs := range byLine {
		if len(idxs) < 2 {
			continue
		}
		lineStart := hunks[idxs[0]].Start - int(hunks[idxs[0]].ByteOffset)
		merged := *hunks[idxs[0]].LineBefore

		ordered := append([]int(nil), idxs...)
		sort.Slice(ordered, func(a, b int) bool { return hunks[ordered[a]].Start > hunks[ordered[b]].Start })
		for _, idx := range ordered {
			h := hunks[idx]
			localStart := h.Start - lineStart
			localEnd := h.End - lineStart
			merged = merged[:localStart] + h.Replace + merged[localEnd:]
		}

		for _, idx := range idxs {
			m := merged
			hunks[idx].LineAfter = &m
		}
	}
	return hunks
}

// scanRenames implements spec.md §4.7's path-candidate pass: rewrite each
// path segment independently, compose renamed paths, and apply conflict
// detection.
func (s *Scanner) scanRenames(entries []Entry) ([]planmodel.Rename, error) {
	searchTM := ident.Tokenize(s.Search, s.Acronyms)
	replaceTM := ident.Tokenize(s.Replace, s.Acronyms)

	type candidate struct {
		entry   Entry
		newPath string
	}
	var candidates []candidate
	targets := map[string][]string{}

	for _, e := range entries {
		if e.IsDir && !s.Options.RenameDirs {
			continue
		}
		if !e.IsDir && !s.Options.RenameFiles {
			continue
		}

		segs := strings.Split(e.Path, "/")
		changedAny := false
		for i, seg := range segs {
			rewritten, changed := s.rewriteSegment(seg, searchTM, replaceTM)
			if changed {
				segs[i] = rewritten
				changedAny = true
			}
		}
		if !changedAny {
			continue
		}
		newPath := strings.Join(segs, "/")
		if newPath == e.Path {
			continue
		}

		candidates = append(candidates, candidate{entry: e, newPath: newPath})
		targets[newPath] = append(targets[newPath], e.Path)
	}

	for target, sources := range targets {
		if len(sources) > 1 && !s.Options.ForceWithConflicts {
			sorted := append([]string(nil), sources...)
			sort.Strings(sorted)
			return nil, renamifyerrors.ErrRenameCollision(sorted[0], sorted[1], target)
		}
	}

	caseInsensitive := probeCaseInsensitiveFS(s.Root)

	var renames []planmodel.Rename
	for _, c := range candidates {
		base := filepath.Base(c.newPath)
		if isReservedName(base) && !s.Options.ForceWithConflicts {
			return nil, renamifyerrors.ErrReservedName(c.entry.Path, strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base))))
		}

		kind := planmodel.KindFile
		if c.entry.IsDir {
			kind = planmodel.KindDir
		}
		r := planmodel.Rename{Path: c.entry.Path, NewPath: c.newPath, Kind: kind}

		if caseInsensitive && c.entry.Path != c.newPath && strings.EqualFold(c.entry.Path, c.newPath) {
			if !s.Options.ForceWithConflicts {
				return nil, renamifyerrors.ErrCaseOnlyRename(c.entry.Path, c.newPath)
			}
			note := "staged-case-only-rename"
			r.CoercionApplied = &note
		}
		renames = append(renames, r)
	}

	if rewritten, changed := s.rewriteSegment(filepath.Base(s.Root), searchTM, replaceTM); changed {
		if !s.Options.RenameRoot {
			return nil, renamifyerrors.ErrRootRename(s.Root)
		}
		renames = append(renames, planmodel.Rename{Path: ".", NewPath: rewritten, Kind: planmodel.KindDir})
	}

	return renames, nil
}

func (s *Scanner) rewriteSegment(seg string, searchTM, replaceTM ident.TokenModel) (string, bool) {
	if entry, ok := s.VM.Lookup(seg); ok {
		return entry.Replacement, true
	}
	if stem, ext := ident.StemAndExt(seg); ext != "" {
		if entry, ok := s.VM.Lookup(stem); ok {
			return entry.Replacement + ext, true
		}
	}
	return compound.Rewrite(seg, searchTM, replaceTM, s.Styles, s.Acronyms)
}
