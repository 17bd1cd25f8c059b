package scan

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/renamify/renamify/internal/acronym"
	"github.com/renamify/renamify/internal/ident"
	"github.com/renamify/renamify/internal/match"
	"github.com/renamify/renamify/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T, root, search, replace string, styles []ident.Style) *Scanner {
	t.Helper()
	set := acronym.Default()
	vm := variant.Generate(search, replace, styles, set, variant.Options{})
	return New(root, search, replace, styles, set, vm, DefaultOptions())
}

func TestScanFileExcludeMatchSkipsVariantKey(t *testing.T) {
	root := t.TempDir()
	set := acronym.Default()
	styles := []ident.Style{ident.Snake, ident.Camel}
	vm := variant.Generate("user_name", "customer_name", styles, set, variant.Options{})

	opts := DefaultOptions()
	opts.ExcludeMatch = []string{"userName"}
	s := New(root, "user_name", "customer_name", styles, set, vm, opts)

	matcher := match.New(s.VM)
	searchTM := ident.Tokenize(s.Search, s.Acronyms)
	data := []byte("let userName = get_user_name();\n")
	hunks := s.scanFile("src/main.go", data, matcher, searchTM)

	for _, h := range hunks {
		assert.NotEqual(t, "userName", h.Variant)
	}
	assert.NotEmpty(t, hunks, "the unexcluded user_name variant should still match")
}

func TestScanFileSimpleReplace(t *testing.T) {
	s := newTestScanner(t, t.TempDir(), "user_name", "customer_name", []ident.Style{ident.Snake, ident.Camel})
	matcher := match.New(s.VM)
	searchTM := ident.Tokenize(s.Search, s.Acronyms)

	data := []byte("let userName = get_user_name();\n")
	hunks := s.scanFile("src/main.go", data, matcher, searchTM)

	require.NotEmpty(t, hunks)
	for _, h := range hunks {
		assert.Contains(t, *h.LineAfter, "customer")
	}
}

func TestScanFileMergesSameLineMatches(t *testing.T) {
	s := newTestScanner(t, t.TempDir(), "foo", "bazz", []ident.Style{ident.Snake})
	matcher := match.New(s.VM)
	searchTM := ident.Tokenize(s.Search, s.Acronyms)

	data := []byte("foo and foo again\n")
	hunks := s.scanFile("a.txt", data, matcher, searchTM)

	require.Len(t, hunks, 2)
	assert.Equal(t, "bazz and bazz again", *hunks[0].LineAfter)
	assert.Equal(t, *hunks[0].LineAfter, *hunks[1].LineAfter)
}

func TestScanFileExcludeMatchingLines(t *testing.T) {
	s := newTestScanner(t, t.TempDir(), "foo", "bazz", []ident.Style{ident.Snake})
	s.Options.ExcludeMatchingLines = regexp.MustCompile("skip")
	matcher := match.New(s.VM)
	searchTM := ident.Tokenize(s.Search, s.Acronyms)

	data := []byte("foo here\n// skip foo\n")
	hunks := s.scanFile("a.txt", data, matcher, searchTM)

	require.Len(t, hunks, 1)
	assert.Equal(t, uint64(1), hunks[0].Line)
}

func TestWalkRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("ignored.txt\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kept.txt"), []byte("x"), 0644))

	w := &Walker{Root: root}
	entries, err := w.Walk()
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Path)
	}
	assert.Contains(t, names, "kept.txt")
	assert.NotContains(t, names, "ignored.txt")
}

func TestWalkHidesDotfilesByDefault(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "visible.txt"), []byte("x"), 0644))

	w := &Walker{Root: root}
	entries, err := w.Walk()
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Path)
	}
	assert.Contains(t, names, "visible.txt")
	assert.NotContains(t, names, ".hidden")
}

func TestScanRenamesDetectsCollision(t *testing.T) {
	root := t.TempDir()
	s := newTestScanner(t, root, "foo", "bar", []ident.Style{ident.Snake})
	s.Options.ForceWithConflicts = false

	// The same source entry listed twice rewrites to one target path twice,
	// which trips the many-to-one collision check.
	entries := []Entry{
		{Path: "a/foo.txt"},
		{Path: "a/foo.txt"},
	}
	_, err := s.scanRenames(entries)
	require.Error(t, err)
}

func TestScanRenamesAllowsCollisionWithForceFlag(t *testing.T) {
	root := t.TempDir()
	s := newTestScanner(t, root, "foo", "bar", []ident.Style{ident.Snake})
	s.Options.ForceWithConflicts = true

	entries := []Entry{
		{Path: "a/foo.txt"},
		{Path: "a/foo.txt"},
	}
	_, err := s.scanRenames(entries)
	require.NoError(t, err)
}

func TestScanRenamesSimpleFileRename(t *testing.T) {
	root := t.TempDir()
	s := newTestScanner(t, root, "foo", "bar", []ident.Style{ident.Snake})

	renames, err := s.scanRenames([]Entry{{Path: "foo.txt"}})
	require.NoError(t, err)
	require.Len(t, renames, 1)
	assert.Equal(t, "bar.txt", renames[0].NewPath)
}

func TestIsReservedName(t *testing.T) {
	assert.True(t, isReservedName("CON"))
	assert.True(t, isReservedName("con.txt"))
	assert.True(t, isReservedName("COM1"))
	assert.False(t, isReservedName("console.txt"))
}
