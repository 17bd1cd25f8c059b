package ident

import "strings"

// DetectStyle guesses the Style a literal string was rendered in, per
// spec.md §4.1. It returns (style, true) when a style is recognized and
// (zero, false) for Mixed/ambiguous input.
func DetectStyle(s string) (Style, bool) {
	if s == "" {
		return 0, false
	}

	sepChar, sepCount, ok := singleSeparator(s)
	if !ok {
		return 0, false
	}

	if sepCount > 0 {
		segs := strings.Split(s, string(sepChar))
		for _, seg := range segs {
			if seg == "" {
				return 0, false
			}
		}
		switch {
		case allSegsCase(segs, false):
			return styleForLowerSep(sepChar), true
		case allSegsCase(segs, true):
			return styleForUpperSep(sepChar), true
		case allSegsTitle(segs):
			return styleForTitleSep(sepChar), true
		case firstTitleRestLower(segs):
			if sepChar == ' ' {
				return Sentence, true
			}
			return 0, false
		default:
			return 0, false
		}
	}

	// No separator.
	r := []rune(s)
	if !isLetter(r[0]) {
		return 0, false
	}
	hasTransition := false
	for i := 1; i < len(r); i++ {
		if isLowerRune(r[i-1]) && isUpperRune(r[i]) {
			hasTransition = true
		}
	}
	allLower := allRunesCase(r, false)
	allUpper := allRunesCase(r, true)

	switch {
	case hasTransition && isLowerRune(r[0]):
		return Camel, true
	case hasTransition && isUpperRune(r[0]):
		return Pascal, true
	case allLower:
		return LowerFlat, true
	case allUpper:
		return UpperFlat, true
	default:
		return 0, false
	}
}

// singleSeparator scans s for separator bytes (_, -, ., space) and reports
// the one separator type used, if exactly one type appears (possibly
// multiple times). Mixed separator types are rejected (ok=false).
func singleSeparator(s string) (sep byte, count int, ok bool) {
	seen := byte(0)
	n := 0
	for i := 0; i < len(s); i++ {
		if isSeparator(s[i]) {
			if seen == 0 {
				seen = s[i]
			} else if seen != s[i] {
				return 0, 0, false
			}
			n++
		}
	}
	return seen, n, true
}

func allSegsCase(segs []string, upper bool) bool {
	any := false
	for _, seg := range segs {
		for _, r := range seg {
			if !isLetter(r) {
				continue
			}
			any = true
			if upper && !isUpperRune(r) {
				return false
			}
			if !upper && !isLowerRune(r) {
				return false
			}
		}
	}
	return any
}

func allRunesCase(r []rune, upper bool) bool {
	any := false
	for _, c := range r {
		if !isLetter(c) {
			continue
		}
		any = true
		if upper && !isUpperRune(c) {
			return false
		}
		if !upper && !isLowerRune(c) {
			return false
		}
	}
	return any
}

func allSegsTitle(segs []string) bool {
	for _, seg := range segs {
		r := []rune(seg)
		if len(r) == 0 || !isLetter(r[0]) || !isUpperRune(r[0]) {
			return false
		}
		for _, c := range r[1:] {
			if isLetter(c) && !isLowerRune(c) {
				return false
			}
		}
	}
	return true
}

func firstTitleRestLower(segs []string) bool {
	if len(segs) == 0 {
		return false
	}
	first := []rune(segs[0])
	if len(first) == 0 || !isLetter(first[0]) || !isUpperRune(first[0]) {
		return false
	}
	for _, c := range first[1:] {
		if isLetter(c) && !isLowerRune(c) {
			return false
		}
	}
	for _, seg := range segs[1:] {
		for _, c := range seg {
			if isLetter(c) && !isLowerRune(c) {
				return false
			}
		}
	}
	return true
}

func styleForLowerSep(b byte) Style {
	switch b {
	case '-':
		return Kebab
	case '.':
		return Dot
	case ' ':
		return LowerSentence
	default:
		return Snake
	}
}

func styleForUpperSep(b byte) Style {
	switch b {
	case '-':
		return ScreamingTrain
	case ' ':
		return UpperSentence
	default:
		return ScreamingSnake
	}
}

func styleForTitleSep(b byte) Style {
	switch b {
	case '-':
		return Train
	default:
		return Title
	}
}

// commonExtensions lists file extensions recognized for stem-only style
// detection on path segments (spec.md §4.1).
var commonExtensions = map[string]bool{
	".go": true, ".rs": true, ".py": true, ".js": true, ".ts": true,
	".tsx": true, ".jsx": true, ".java": true, ".c": true, ".h": true,
	".cpp": true, ".hpp": true, ".rb": true, ".php": true, ".cs": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".md": true,
	".txt": true, ".sh": true, ".sql": true, ".proto": true, ".html": true,
	".css": true, ".scss": true, ".xml": true, ".lock": true,
}

// StemAndExt splits a basename into (stem, ext) when ext is a recognized
// extension; otherwise returns (basename, "").
func StemAndExt(basename string) (string, string) {
	idx := strings.LastIndexByte(basename, '.')
	if idx <= 0 {
		return basename, ""
	}
	ext := basename[idx:]
	if commonExtensions[strings.ToLower(ext)] {
		return basename[:idx], ext
	}
	return basename, ""
}
