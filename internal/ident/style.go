package ident

import (
	"strings"

	"github.com/renamify/renamify/internal/acronym"
)

// Style is one of the naming conventions the engine understands.
type Style int

const (
	Snake Style = iota
	Kebab
	Camel
	Pascal
	ScreamingSnake
	ScreamingTrain
	Train
	Title
	Sentence
	LowerSentence
	UpperSentence
	Dot
	LowerFlat
	UpperFlat
)

// String returns the canonical lowercase-hyphenated name of the style, as
// used on the CLI (--only-styles, --include-styles, ...).
func (s Style) String() string {
	switch s {
	case Snake:
		return "snake"
	case Kebab:
		return "kebab"
	case Camel:
		return "camel"
	case Pascal:
		return "pascal"
	case ScreamingSnake:
		return "screaming-snake"
	case ScreamingTrain:
		return "screaming-train"
	case Train:
		return "train"
	case Title:
		return "title"
	case Sentence:
		return "sentence"
	case LowerSentence:
		return "lower-sentence"
	case UpperSentence:
		return "upper-sentence"
	case Dot:
		return "dot"
	case LowerFlat:
		return "lower-flat"
	case UpperFlat:
		return "upper-flat"
	default:
		return "unknown"
	}
}

// ParseStyle parses a CLI-facing style name back into a Style.
func ParseStyle(name string) (Style, bool) {
	for _, s := range AllStyles {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// AllStyles lists every supported style in a fixed, documented order.
var AllStyles = []Style{
	Snake, Kebab, Camel, Pascal, ScreamingSnake, ScreamingTrain, Train,
	Title, Sentence, LowerSentence, UpperSentence, Dot, LowerFlat, UpperFlat,
}

// CaseConstraint is the character-class pattern a style's rendered text must
// satisfy, per spec.md §3/§4.4.
type CaseConstraint int

const (
	AllUppercase CaseConstraint = iota
	AllLowercase
	TitlePattern
	SentencePattern
	CamelPattern
	PascalPattern
)

// Separator identifies the single separator byte a style permits, or that
// it permits none.
type Separator struct {
	Byte byte
	None bool
}

func sep(b byte) Separator { return Separator{Byte: b} }

var noSep = Separator{None: true}

// Constraint returns the (case constraint, separator) pair for a style.
func (s Style) Constraint() (CaseConstraint, Separator) {
	switch s {
	case Snake:
		return AllLowercase, sep('_')
	case Kebab:
		return AllLowercase, sep('-')
	case Dot:
		return AllLowercase, sep('.')
	case LowerSentence:
		return AllLowercase, sep(' ')
	case LowerFlat:
		return AllLowercase, noSep
	case ScreamingSnake:
		return AllUppercase, sep('_')
	case ScreamingTrain:
		return AllUppercase, sep('-')
	case UpperSentence:
		return AllUppercase, sep(' ')
	case UpperFlat:
		return AllUppercase, noSep
	case Train:
		return TitlePattern, sep('-')
	case Title:
		return TitlePattern, sep(' ')
	case Sentence:
		return SentencePattern, sep(' ')
	case Camel:
		return CamelPattern, noSep
	case Pascal:
		return PascalPattern, noSep
	default:
		return AllLowercase, noSep
	}
}

// Render renders a token sequence in the given style.
func Render(tm TokenModel, style Style) string {
	toks := tm.Tokens
	if len(toks) == 0 {
		return ""
	}
	switch style {
	case Snake:
		return joinCase(toks, "_", strings.ToLower)
	case Kebab:
		return joinCase(toks, "-", strings.ToLower)
	case Dot:
		return joinCase(toks, ".", strings.ToLower)
	case LowerSentence:
		return joinCase(toks, " ", strings.ToLower)
	case LowerFlat:
		return joinCase(toks, "", strings.ToLower)
	case ScreamingSnake:
		return joinCase(toks, "_", strings.ToUpper)
	case ScreamingTrain:
		return joinCase(toks, "-", strings.ToUpper)
	case UpperSentence:
		return joinCase(toks, " ", strings.ToUpper)
	case UpperFlat:
		return joinCase(toks, "", strings.ToUpper)
	case Train:
		return joinCase(toks, "-", titleWord)
	case Title:
		return joinCase(toks, " ", titleWord)
	case Sentence:
		return renderSentence(toks, false)
	case Camel:
		return renderCamelPascal(toks, false)
	case Pascal:
		return renderCamelPascal(toks, true)
	default:
		return joinCase(toks, "_", strings.ToLower)
	}
}

func joinCase(toks []Token, sep string, f func(string) string) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = f(t.Text)
	}
	return strings.Join(parts, sep)
}

// titleWord renders a token title-cased: its first rune capitalized and
// the rest lowercased, acronyms included.
func titleWord(w string) string {
	if w == "" {
		return w
	}
	return capitalize(w)
}

func capitalize(w string) string {
	r := []rune(strings.ToLower(w))
	if len(r) == 0 {
		return w
	}
	r[0] = toUpperRune(r[0])
	return string(r)
}

func toUpperRune(r rune) rune {
	s := strings.ToUpper(string(r))
	for _, u := range s {
		return u
	}
	return r
}

func renderSentence(toks []Token, preserveAcronymCaps bool) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		if i == 0 {
			parts[i] = titleToken(t, preserveAcronymCaps)
		} else {
			if t.IsAcronym && preserveAcronymCaps {
				parts[i] = strings.ToUpper(t.Text)
			} else {
				parts[i] = strings.ToLower(t.Text)
			}
		}
	}
	return strings.Join(parts, " ")
}

func titleToken(t Token, preserveAcronymCaps bool) string {
	if t.IsAcronym && preserveAcronymCaps {
		return strings.ToUpper(t.Text)
	}
	return capitalize(t.Text)
}

// renderCamelPascal renders Camel (first token lowercase, rest Title) or
// Pascal (every token Title). Known acronyms are capitalized-then-lowercased
// (rendered as a normal title-cased word) rather than kept fully uppercase,
// matching spec.md §4.1's default Camel rendering rule.
func renderCamelPascal(toks []Token, pascal bool) string {
	var b strings.Builder
	for i, t := range toks {
		if i == 0 && !pascal {
			b.WriteString(strings.ToLower(t.Text))
			continue
		}
		b.WriteString(capitalize(t.Text))
	}
	return b.String()
}

// CanMatchStyle implements C4: reports whether text is a value that style
// could legally have rendered, honoring the acronym-softened "no
// consecutive uppercase" rule.
func CanMatchStyle(text string, style Style, set *acronym.Set) bool {
	if text == "" {
		return false
	}
	constraint, wantSep := style.Constraint()

	foundSep := byte(0)
	hasSep := false
	for i := 0; i < len(text); i++ {
		if isSeparator(text[i]) {
			if wantSep.None {
				return false
			}
			if hasSep && foundSep != text[i] {
				return false
			}
			if text[i] != wantSep.Byte {
				return false
			}
			foundSep = text[i]
			hasSep = true
		}
	}

	switch constraint {
	case AllUppercase:
		return allCase(text, true)
	case AllLowercase:
		return allCase(text, false)
	case TitlePattern:
		return checkTitlePattern(text, wantSep)
	case SentencePattern:
		return checkSentencePattern(text, wantSep)
	case CamelPattern:
		return checkCamelPascal(text, set, false)
	case PascalPattern:
		return checkCamelPascal(text, set, true)
	default:
		return false
	}
}

func allCase(text string, upper bool) bool {
	for _, r := range text {
		if isSeparator(byte(r)) {
			continue
		}
		if !isLetter(r) {
			continue
		}
		if upper && !isUpperRune(r) {
			return false
		}
		if !upper && !isLowerRune(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
func isUpperRune(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLowerRune(r rune) bool { return r >= 'a' && r <= 'z' }

// checkTitlePattern verifies every separator-delimited segment has its
// first letter uppercase and the rest lowercase.
func checkTitlePattern(text string, wantSep Separator) bool {
	var segs []string
	if wantSep.None {
		segs = []string{text}
	} else {
		segs = strings.Split(text, string(wantSep.Byte))
	}
	for _, seg := range segs {
		if seg == "" {
			return false
		}
		r := []rune(seg)
		if !isLetter(r[0]) || !isUpperRune(r[0]) {
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

// checkSentencePattern verifies Sentence's pattern: the first segment has
// its first letter uppercase and the rest lowercase, every later segment is
// entirely lowercase.
func checkSentencePattern(text string, wantSep Separator) bool {
	var segs []string
	if wantSep.None {
		segs = []string{text}
	} else {
		segs = strings.Split(text, string(wantSep.Byte))
	}
	if len(segs) == 0 || segs[0] == "" {
		return false
	}
	first := []rune(segs[0])
	if !isLetter(first[0]) || !isUpperRune(first[0]) {
		return false
	}
	for _, c := range first[1:] {
		if isLetter(c) && !isLowerRune(c) {
			return false
		}
	}
	for _, seg := range segs[1:] {
		if seg == "" {
			return false
		}
		for _, c := range seg {
			if isLetter(c) && !isLowerRune(c) {
				return false
			}
		}
	}
	return true
}

// checkCamelPascal verifies the no-separator camelCase/PascalCase pattern:
// first letter case as required, and no consecutive-uppercase run unless a
// prefix of that run is a known acronym.
func checkCamelPascal(text string, set *acronym.Set, pascal bool) bool {
	r := []rune(text)
	if len(r) == 0 || !isLetter(r[0]) {
		return false
	}
	if pascal && !isUpperRune(r[0]) {
		return false
	}
	if !pascal && !isLowerRune(r[0]) {
		return false
	}

	i := 1
	for i < len(r) {
		if isUpperRune(r[i]) && isUpperRune(r[i-1]) {
			// consecutive uppercase: find the run, then check acronym softening.
			start := i - 1
			end := i
			for end < len(r) && isUpperRune(r[end]) {
				end++
			}
			if set == nil || set.LongestMatch(string(r[start:])) == 0 {
				return false
			}
			i = end
			continue
		}
		i++
	}
	return true
}
