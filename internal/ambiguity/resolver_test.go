package ambiguity

import (
	"testing"

	"github.com/renamify/renamify/internal/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSingleCandidateIsTrivial(t *testing.T) {
	r := New()
	style, ok := r.Resolve([]ident.Style{ident.Snake}, Context{})
	require.True(t, ok)
	assert.Equal(t, ident.Snake, style)
}

func TestAnalyzeFileDominantStyleWins(t *testing.T) {
	r := New()
	var snakeIDs []string
	for i := 0; i < 60; i++ {
		snakeIDs = append(snakeIDs, "user_name_field")
	}
	r.AnalyzeFile("src/main.rs", snakeIDs)

	style, ok := r.Resolve([]ident.Style{ident.Snake, ident.Camel}, Context{FilePath: "src/main.rs"})
	require.True(t, ok)
	assert.Equal(t, ident.Snake, style)
}

func TestAnalyzeFileBelowMinimumIsIgnored(t *testing.T) {
	r := New()
	r.AnalyzeFile("src/tiny.rs", []string{"user_name", "other_thing"})

	_, ok := r.fileDominantStyle("src/tiny.rs")
	assert.False(t, ok, "fewer than the minimum sample should not set a dominant style")
}

func TestCrossFileKeywordContext(t *testing.T) {
	r := New()
	r.RecordKeyword(".rs", "const", ident.ScreamingSnake)
	r.RecordKeyword(".rs", "const", ident.ScreamingSnake)
	r.RecordKeyword(".rs", "const", ident.Snake)

	style, ok := r.Resolve([]ident.Style{ident.Snake, ident.ScreamingSnake},
		Context{FilePath: "other.rs", Extension: ".rs", PrecedingKeyword: "const"})
	require.True(t, ok)
	assert.Equal(t, ident.ScreamingSnake, style)
}

func TestLanguageHeuristicRust(t *testing.T) {
	r := New()
	style, ok := r.Resolve([]ident.Style{ident.Pascal, ident.Camel},
		Context{FilePath: "lib.rs", Extension: ".rs", PrecedingKeyword: "struct"})
	require.True(t, ok)
	assert.Equal(t, ident.Pascal, style)
}

func TestLanguageHeuristicJavaDefault(t *testing.T) {
	r := New()
	style, ok := r.Resolve([]ident.Style{ident.Camel, ident.Snake},
		Context{FilePath: "Main.java", Extension: ".java"})
	require.True(t, ok)
	assert.Equal(t, ident.Camel, style)
}

func TestResolveDropsWhenIgnoreAmbiguous(t *testing.T) {
	r := New()
	_, ok := r.Resolve([]ident.Style{ident.Snake, ident.Kebab},
		Context{FilePath: "config.txt", IgnoreAmbiguous: true})
	assert.False(t, ok)
}

func TestResolveFallsBackAlphabetically(t *testing.T) {
	r := New()
	style, ok := r.Resolve([]ident.Style{ident.Snake, ident.Kebab}, Context{FilePath: "config.txt"})
	require.True(t, ok)
	// "kebab" < "snake" alphabetically.
	assert.Equal(t, ident.Kebab, style)
}

func TestResolveIsDeterministicAcrossCandidateOrder(t *testing.T) {
	r := New()
	s1, _ := r.Resolve([]ident.Style{ident.Snake, ident.Kebab, ident.Camel}, Context{})
	s2, _ := r.Resolve([]ident.Style{ident.Camel, ident.Kebab, ident.Snake}, Context{})
	assert.Equal(t, s1, s2)
}
