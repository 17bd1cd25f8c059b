package compound

import (
	"testing"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteCompoundPreservesOuterStyle(t *testing.T) {
	set := acronym.Default()
	searchTM := ident.Tokenize("foo_bar", set)
	replaceTM := ident.Tokenize("bazz", set)
	active := []ident.Style{ident.Camel, ident.Pascal}

	got, changed := Rewrite("shouldFooBarPlease", searchTM, replaceTM, active, set)
	require.True(t, changed)
	assert.Equal(t, "shouldBazzPlease", got)

	got2, changed2 := Rewrite("FooBarOption", searchTM, replaceTM, active, set)
	require.True(t, changed2)
	assert.Equal(t, "BazzOption", got2)
}

func TestRewriteDropsWhenStyleNotActive(t *testing.T) {
	set := acronym.Default()
	searchTM := ident.Tokenize("foo_bar", set)
	replaceTM := ident.Tokenize("bazz", set)
	// snake_case identifier but only Camel/Pascal are active.
	_, changed := Rewrite("should_foo_bar_please", searchTM, replaceTM, []ident.Style{ident.Camel}, set)
	assert.False(t, changed)
}

func TestFindSegmentsSplitsOnDot(t *testing.T) {
	segs := FindSegments([]byte("obj.method(fooBar)"))
	var texts []string
	for _, s := range segs {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"obj", "method", "fooBar"}, texts)
}
