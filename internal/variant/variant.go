// Package variant implements C3: generating the `variant -> replacement`
// map from (search, replace, active styles, acronym set).
package variant

import (
	"sort"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/ident"
)

// Options controls how search/replace are tokenized before rendering.
type Options struct {
	// AtomicSearch/AtomicReplace treat the corresponding term as a single
	// opaque token instead of tokenizing it.
	AtomicSearch  bool
	AtomicReplace bool
}

// Entry is one (variant key, replacement) pair plus the styles that can
// legally match the key, precomputed per spec.md §4.3 step 4.
type Entry struct {
	Key         string
	Replacement string
	Styles      []ident.Style
	// Style is the single active style whose render first produced this
	// key; used by the compound/coercion engine (C6) to decide whether a
	// match's container uses a different convention than the one that
	// generated it.
	Style ident.Style
}

// Map is the ordered variant->replacement mapping. Iteration is always in
// Entries' slice order, which is deterministic: sorted by (key length
// descending, key lexicographic ascending) so the pattern matcher gets
// longest-leftmost semantics for free.
type Map struct {
	Entries []Entry
	byKey   map[string]int
	// ReplaceTM is the tokenized replacement term, kept so callers (the
	// scanner's ambiguity resolution) can re-render it in a specific style
	// when an occurrence's variant key is compatible with more than one
	// entry in Styles.
	ReplaceTM ident.TokenModel
}

// Generate builds the variant map for (search, replace) across the active
// styles, per spec.md §4.3.
func Generate(search, replace string, styles []ident.Style, set *acronym.Set, opts Options) *Map {
	var searchTM, replaceTM ident.TokenModel
	if opts.AtomicSearch {
		searchTM = ident.Atomic(search)
	} else {
		searchTM = ident.Tokenize(search, set)
	}
	if opts.AtomicReplace {
		replaceTM = ident.Atomic(replace)
	} else {
		replaceTM = ident.Tokenize(replace, set)
	}

	m := &Map{byKey: make(map[string]int), ReplaceTM: replaceTM}
	for _, style := range styles {
		key := ident.Render(searchTM, style)
		val := ident.Render(replaceTM, style)
		if key == "" {
			continue
		}
		if idx, ok := m.byKey[key]; ok {
			// Suppress duplicate keys, keeping the first occurrence's
			// replacement (deterministic order per spec.md §4.3 step 2).
			m.Entries[idx].Styles = appendStyleIfAbsent(m.Entries[idx].Styles, style, key, set)
			continue
		}
		entry := Entry{Key: key, Replacement: val, Style: style}
		entry.Styles = compatibleStyles(key, styles, set)
		m.byKey[key] = len(m.Entries)
		m.Entries = append(m.Entries, entry)
	}

	sort.SliceStable(m.Entries, func(i, j int) bool {
		a, b := m.Entries[i], m.Entries[j]
		if len(a.Key) != len(b.Key) {
			return len(a.Key) > len(b.Key)
		}
		return a.Key < b.Key
	})
	m.reindex()
	return m
}

func appendStyleIfAbsent(styles []ident.Style, s ident.Style, key string, set *acronym.Set) []ident.Style {
	for _, existing := range styles {
		if existing == s {
			return styles
		}
	}
	if ident.CanMatchStyle(key, s, set) {
		return append(styles, s)
	}
	return styles
}

func compatibleStyles(key string, active []ident.Style, set *acronym.Set) []ident.Style {
	var out []ident.Style
	for _, s := range active {
		if ident.CanMatchStyle(key, s, set) {
			out = append(out, s)
		}
	}
	return out
}

func (m *Map) reindex() {
	m.byKey = make(map[string]int, len(m.Entries))
	for i, e := range m.Entries {
		m.byKey[e.Key] = i
	}
}

// Lookup returns the replacement and compatible-styles list for an exact
// variant key, if present.
func (m *Map) Lookup(key string) (Entry, bool) {
	idx, ok := m.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return m.Entries[idx], true
}

// Keys returns the variant keys in the map's deterministic order, for
// compiling the pattern matcher.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}
