// Package match implements C5: a longest-leftmost multi-literal matcher
// over the generated variant keys, with the boundary rule from spec.md
// §4.5 that keeps matches aligned to identifier boundaries.
package match

import "github.com/renamify/renamify/internal/variant"

// Match is one accepted occurrence of a variant key in a byte buffer.
type Match struct {
	Start, End int
	Key        string
}

// Matcher scans a buffer for the longest variant key starting at each
// position, honoring identifier-boundary rules.
type Matcher struct {
	// keys is pre-sorted longest-first, lexicographic tie-break, mirroring
	// variant.Map's deterministic ordering so the first satisfied match at
	// a given start position is the longest one.
	keys []string
}

// New builds a Matcher over a variant map's keys.
func New(vm *variant.Map) *Matcher {
	return &Matcher{keys: vm.Keys()}
}

// FindAll returns every non-overlapping, boundary-valid match in buf, in
// left-to-right order.
func (m *Matcher) FindAll(buf []byte) []Match {
	var out []Match
	pos := 0
	for pos < len(buf) {
		if match, ok := m.matchAt(buf, pos); ok {
			out = append(out, match)
			pos = match.End
			continue
		}
		pos++
	}
	return out
}

func (m *Matcher) matchAt(buf []byte, pos int) (Match, bool) {
	for _, key := range m.keys {
		end := pos + len(key)
		if end > len(buf) {
			continue
		}
		if string(buf[pos:end]) != key {
			continue
		}
		if !boundaryOK(buf, pos, end) {
			continue
		}
		return Match{Start: pos, End: end, Key: key}, true
	}
	return Match{}, false
}

func boundaryOK(buf []byte, start, end int) bool {
	if start > 0 && isAlnum(buf[start-1]) {
		return false
	}
	if end == len(buf) {
		return true
	}
	if !isAlnum(buf[end]) {
		return true
	}
	// Allow a match to end right at a camelCase hump: last matched byte
	// lowercase, next byte uppercase (e.g. "DeployRequest" before "List").
	if end > start && isLower(buf[end-1]) && isUpper(buf[end]) {
		return true
	}
	return false
}

// isAlnum reports whether b is an ASCII letter or digit. Underscore is
// deliberately excluded: spec.md §4.5 treats it as a separator, not part of
// the identifier, for boundary purposes.
func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
