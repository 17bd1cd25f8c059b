// Package compound implements C6: detecting matches nested inside larger
// identifiers (compound matching) and coercing a replacement to match the
// separator convention of its surrounding container (contextual coercion).
package compound

import (
	"regexp"
	"strings"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/ident"
)

// identifierPattern finds identifier-like byte ranges: a leading letter or
// underscore followed by letters, digits, underscore, hyphen, or dot.
var identifierPattern = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_\-.]*\b`)

// Segment is one dot-separated piece of an identifier-like range, with
// offsets relative to the scanned buffer.
type Segment struct {
	Start, End int
	Text       string
}

// FindSegments returns every identifier-like range in buf, split on '.' so
// that "obj.method" yields two independent segments.
func FindSegments(buf []byte) []Segment {
	var segs []Segment
	for _, loc := range identifierPattern.FindAllIndex(buf, -1) {
		start, end := loc[0], loc[1]
		text := string(buf[start:end])
		parts := strings.Split(text, ".")
		offset := start
		for _, p := range parts {
			if p != "" {
				segs = append(segs, Segment{Start: offset, End: offset + len(p), Text: p})
			}
			offset += len(p) + 1
		}
	}
	return segs
}

// Match is an accepted compound rewrite within a segment.
type Match struct {
	Start, End      int
	Replacement     string
	CoercionApplied string
}

// Rewrite scans identifier for every position where its token sequence
// contains the search term's token sequence as a (case-insensitive)
// subsequence, and if found, splices in the replace tokens, detects the
// identifier's overall style, and renders the fully-rewritten sequence in
// that style. Returns the rewritten string and whether a change was made.
// Per spec.md §4.6, the match is dropped (changed=false) when the detected
// style isn't in activeStyles or detection is Mixed.
func Rewrite(identifier string, searchTM, replaceTM ident.TokenModel, activeStyles []ident.Style, set *acronym.Set) (string, bool) {
	stem, ext := ident.StemAndExt(identifier)

	idTM := ident.Tokenize(stem, set)
	searchTexts := lowerTexts(searchTM.Tokens)
	if len(searchTexts) == 0 || len(searchTexts) > len(idTM.Tokens) {
		return identifier, false
	}

	newTokens, changed := spliceAll(idTM, searchTexts, replaceTM.Tokens)
	if !changed {
		return identifier, false
	}

	detectStem := stem
	var trailingSep byte
	if n := len(stem); n > 0 && isTrailingSep(stem[n-1]) {
		trailingSep = stem[n-1]
		detectStem = stem[:n-1]
	}

	style, ok := ident.DetectStyle(detectStem)
	if !ok || !styleActive(style, activeStyles) {
		return identifier, false
	}

	rendered := ident.Render(ident.TokenModel{Tokens: newTokens}, style)
	if trailingSep != 0 {
		rendered += string(trailingSep)
	}
	return rendered + ext, true
}

func isTrailingSep(b byte) bool {
	return b == '_' || b == '-' || b == '.'
}

func styleActive(style ident.Style, active []ident.Style) bool {
	for _, s := range active {
		if s == style {
			return true
		}
	}
	return false
}

func lowerTexts(toks []ident.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = strings.ToLower(t.Text)
	}
	return out
}

// spliceAll scans idTM's tokens left to right for every non-overlapping
// occurrence of searchTexts and replaces each with replaceToks, preserving
// the first matched token's original case on the first replacement token.
func spliceAll(idTM ident.TokenModel, searchTexts []string, replaceToks []ident.Token) ([]ident.Token, bool) {
	toks := idTM.Tokens
	var out []ident.Token
	changed := false
	i := 0
	for i < len(toks) {
		if matchesAt(toks, i, searchTexts) {
			changed = true
			out = append(out, spliceReplacement(toks[i], replaceToks)...)
			i += len(searchTexts)
			continue
		}
		out = append(out, toks[i])
		i++
	}
	return out, changed
}

func matchesAt(toks []ident.Token, pos int, searchTexts []string) bool {
	if pos+len(searchTexts) > len(toks) {
		return false
	}
	for i, want := range searchTexts {
		if strings.ToLower(toks[pos+i].Text) != want {
			return false
		}
	}
	return true
}

func spliceReplacement(original ident.Token, replaceToks []ident.Token) []ident.Token {
	out := make([]ident.Token, len(replaceToks))
	copy(out, replaceToks)
	if len(out) > 0 && original.FirstUpper {
		out[0] = capitalizeToken(out[0])
	}
	return out
}

func capitalizeToken(t ident.Token) ident.Token {
	t.FirstUpper = true
	return t
}
