// Package ident implements the token and style model: splitting identifiers
// into ordered token sequences and rendering those sequences back out in any
// supported naming convention.
package ident

import (
	"strings"
	"unicode"

	"github.com/renamify/renamify/internal/acronym"
)

// Token is a single word extracted from an identifier. Text is stored
// lowercase unless the token is a recognized acronym, in which case it is
// stored uppercase.
type Token struct {
	Text      string
	IsAcronym bool
	// FirstUpper records whether the original, pre-normalization word
	// started with an uppercase letter. Used by the compound engine (C6)
	// to preserve the case of a replacement token spliced into a larger
	// identifier.
	FirstUpper bool
}

// TokenModel is an ordered token sequence plus an optional hint about the
// separator the identifier originally used, consulted only to prefer the
// same separator on round-trip renders.
type TokenModel struct {
	Tokens     []Token
	OrigSep    byte
	HasOrigSep bool
}

const separators = "_-. "

func isSeparator(b byte) bool {
	return strings.IndexByte(separators, b) >= 0
}

// Atomic builds a single-token model containing s verbatim (lowercased for
// matching), used when the atomic_search/atomic_replace flags are set.
func Atomic(s string) TokenModel {
	return TokenModel{Tokens: []Token{{Text: strings.ToLower(s)}}}
}

// Tokenize splits an arbitrary identifier into an ordered Token sequence
// following the rules in spec.md §4.1:
//  1. split on any of _ - . or space (hard boundaries)
//  2. within a run, start a new token on lower->upper transitions, and on
//     upper-run->lower transitions when the upper run has length >= 2 (the
//     last uppercase letter of the run starts the new token)
//  3. digits stay attached to the surrounding letter run
//  4. an all-caps run of length >= 2 is flagged IsAcronym if it is a member
//     of the given AcronymSet
func Tokenize(s string, set *acronym.Set) TokenModel {
	tm := TokenModel{}
	if s == "" {
		return tm
	}

	runs := splitOnSeparators(s)
	if len(runs) > 1 || (len(runs) == 1 && runs[0] != s) {
		tm.HasOrigSep = true
		for i := 0; i < len(s); i++ {
			if isSeparator(s[i]) {
				tm.OrigSep = s[i]
				break
			}
		}
	}

	for _, run := range runs {
		tm.Tokens = append(tm.Tokens, tokenizeRun(run, set)...)
	}
	return tm
}

// splitOnSeparators splits on hard separator bytes, dropping empty runs
// produced by consecutive separators.
func splitOnSeparators(s string) []string {
	var runs []string
	start := 0
	for i := 0; i < len(s); i++ {
		if isSeparator(s[i]) {
			if i > start {
				runs = append(runs, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		runs = append(runs, s[start:])
	}
	return runs
}

// tokenizeRun applies the camel-hump / acronym splitting rules within a run
// that contains no hard separators.
func tokenizeRun(run string, set *acronym.Set) []Token {
	if run == "" {
		return nil
	}
	r := []rune(run)
	var tokens []Token
	start := 0

	flush := func(end int) {
		if end > start {
			word := string(r[start:end])
			tokens = append(tokens, makeToken(word, set))
		}
	}

	i := 1
	for i < len(r) {
		prevLower := unicode.IsLower(r[i-1])
		curUpper := unicode.IsUpper(r[i])

		if prevLower && curUpper {
			// lowercase -> uppercase camel hump
			flush(i)
			start = i
			i++
			continue
		}

		// Detect upper-run -> lower transition: scan for a maximal run of
		// uppercase letters ending at i-1, of length >= 2, followed by a
		// lowercase letter at i.
		if unicode.IsLower(r[i]) && unicode.IsUpper(r[i-1]) {
			// find start of the uppercase run
			j := i - 1
			for j > start && unicode.IsUpper(r[j-1]) {
				j--
			}
			runLen := (i - 1) - j + 1
			if runLen >= 2 {
				// split before the last uppercase letter (i-1), which
				// becomes the start of the new (capitalized) token.
				if i-1 > start {
					flush(i - 1)
					start = i - 1
				}
			}
		}
		i++
	}
	flush(len(r))
	return tokens
}

func makeToken(word string, set *acronym.Set) Token {
	lower := strings.ToLower(word)
	firstUpper := len(word) > 0 && unicode.IsUpper(rune(word[0]))
	if len(word) >= 2 && isAllUpperDigit(word) && set != nil && set.Contains(word) {
		return Token{Text: strings.ToUpper(word), IsAcronym: true, FirstUpper: firstUpper}
	}
	return Token{Text: lower, FirstUpper: firstUpper}
}

func isAllUpperDigit(s string) bool {
	for _, r := range s {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// TokenTexts returns the lowercase text of every token, for token-sequence
// comparisons (compound matching, ambiguity scoring).
func (tm TokenModel) TokenTexts() []string {
	out := make([]string, len(tm.Tokens))
	for i, t := range tm.Tokens {
		out[i] = strings.ToLower(t.Text)
	}
	return out
}
