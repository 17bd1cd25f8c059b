package ambiguity

import "github.com/renamify/renamify/internal/ident"

// languageRule maps a preceding keyword to the style it implies for an
// identifier that follows it, per spec.md §4.11 step 3. Rust and Java are
// verbatim from the original rule set; Go and Python supplement it
// (grounded in original_source/renamify-core/src/ambiguity/languages/
// {rust,java}.rs, generalized to Go and Python).
type languageRule struct {
	keyword string
	style   ident.Style
}

var languageRules = map[string][]languageRule{
	".rs": {
		{"struct", ident.Pascal},
		{"enum", ident.Pascal},
		{"trait", ident.Pascal},
		{"impl", ident.Pascal},
		{"type", ident.Pascal},
		{"fn", ident.Snake},
		{"let", ident.Snake},
		{"mod", ident.Snake},
		{"use", ident.Snake},
		{"const", ident.ScreamingSnake},
		{"static", ident.ScreamingSnake},
		{"'", ident.LowerFlat}, // lifetime prefix
	},
	".java": {
		{"class", ident.Pascal},
		{"interface", ident.Pascal},
		{"enum", ident.Pascal},
		{"record", ident.Pascal},
		{"@interface", ident.Pascal},
		{"static final", ident.ScreamingSnake},
		{"package", ident.LowerFlat},
		{"import", ident.LowerFlat},
	},
	".go": {
		{"type", ident.Pascal},
		{"func", ident.Camel},
		{"var", ident.Camel},
		{"const", ident.Camel},
		{"const_caps", ident.ScreamingSnake},
	},
	".py": {
		{"class", ident.Pascal},
		{"def", ident.Snake},
		{"assign", ident.Snake},
		{"module_caps", ident.ScreamingSnake},
	},
}

// languageDefaults gives a fallback style for a language when no keyword
// rule matched, e.g. Java's "default ⇒ Camel".
var languageDefaults = map[string]ident.Style{
	".java": ident.Camel,
}

// LanguageStyle returns the style implied by a preceding keyword for files
// of the given extension.
func LanguageStyle(ext, keyword string) (ident.Style, bool) {
	rules, ok := languageRules[ext]
	if !ok {
		return 0, false
	}
	for _, r := range rules {
		if r.keyword == keyword {
			return r.style, true
		}
	}
	return 0, false
}

// LanguageDefault returns a language's fallback style when no keyword rule
// applies.
func LanguageDefault(ext string) (ident.Style, bool) {
	s, ok := languageDefaults[ext]
	return s, ok
}
