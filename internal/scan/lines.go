package scan

import (
	"sort"

	"github.com/renamify/renamify/internal/ident"
)

// buildLineIndex returns the byte offset at which each line of data
// begins, for position -> (line, column) conversion.
func buildLineIndex(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' && i+1 < len(data) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineNumber returns the 1-based line number containing byte offset pos.
func lineNumber(lineStarts []int, pos int) int {
	i := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > pos })
	return i // lineStarts is 0-indexed by line-1, so i is already the 1-based line number
}

// lineBounds returns the [start, end) byte range of the full line
// containing pos, excluding the trailing newline.
func lineBounds(data []byte, pos int) (int, int) {
	start := pos
	for start > 0 && data[start-1] != '\n' {
		start--
	}
	end := pos
	for end < len(data) && data[end] != '\n' {
		end++
	}
	return start, end
}

// isBinary applies a NUL-byte heuristic over the first 8 KiB of data, per
// spec.md §4.7 step 1.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 8192 {
		n = 8192
	}
	for i := 0; i < n; i++ {
		if data[i] == 0 {
			return true
		}
	}
	return false
}

// rangeConsumed reports whether any byte in [start, end) has already been
// claimed by an earlier accepted match.
func rangeConsumed(consumed []bool, start, end int) bool {
	for i := start; i < end && i < len(consumed); i++ {
		if consumed[i] {
			return true
		}
	}
	return false
}

func styleNames(styles []ident.Style) []string {
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	return names
}
