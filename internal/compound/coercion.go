package compound

import (
	"github.com/renamify/renamify/internal/ident"
	"github.com/renamify/renamify/internal/variant"
)

// contextSeparators are the non-identifier characters that delimit a
// "container" for coercion purposes (spec.md §4.6): crossing one of these
// means you've left the enclosing identifier/path segment.
const contextSeparators = "/()[]:@.= {}\"'"

func isContextSeparator(b byte) bool {
	for i := 0; i < len(contextSeparators); i++ {
		if contextSeparators[i] == b {
			return true
		}
	}
	return false
}

// ContainerBounds returns the [start, end) byte range of the container
// enclosing the match at [matchStart, matchEnd) within line: the maximal
// run of non-context-separator bytes around it.
func ContainerBounds(line []byte, matchStart, matchEnd int) (int, int) {
	start := matchStart
	for start > 0 && !isContextSeparator(line[start-1]) {
		start--
	}
	end := matchEnd
	for end < len(line) && !isContextSeparator(line[end]) {
		end++
	}
	return start, end
}

// Coerce decides the replacement text for a C5 match given its enclosing
// container, per spec.md §4.6's contextual coercion rule: if the container
// uses a separator convention different from the one that generated this
// variant, re-render the replacement in the container's convention. Never
// coerces when the container's detected style is Mixed or Dot. Returns the
// (possibly re-rendered) replacement and the style name applied, or "" if
// no coercion was applied.
func Coerce(container string, entry variant.Entry, replaceTM ident.TokenModel) (string, string) {
	containerStyle, ok := ident.DetectStyle(container)
	if !ok || containerStyle == ident.Dot {
		return entry.Replacement, ""
	}
	if containerStyle == entry.Style {
		return entry.Replacement, ""
	}
	return ident.Render(replaceTM, containerStyle), containerStyle.String()
}
