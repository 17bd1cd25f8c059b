package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renamify/renamify/internal/planmodel"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApplyPatchesContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello user_name done\n")

	plan := &planmodel.Plan{
		ID: "plan1",
		Matches: []planmodel.MatchHunk{
			{File: "a.txt", Line: 1, Start: 6, End: 15, Content: "user_name", Replace: "customer_name"},
		},
	}

	a := New(root, Options{BackupDir: filepath.Join(root, ".renamify/backups")})
	res, err := a.Apply(plan)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	assert.Equal(t, "hello customer_name done\n", readFile(t, filepath.Join(root, "a.txt")))

	backup := filepath.Join(root, ".renamify/backups", "plan1", "a.txt")
	assert.Equal(t, "hello user_name done\n", readFile(t, backup))
}

func TestApplyAbortsOnContentMismatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello changed done\n")

	plan := &planmodel.Plan{
		ID: "plan1",
		Matches: []planmodel.MatchHunk{
			{File: "a.txt", Line: 1, Start: 6, End: 15, Content: "user_name", Replace: "customer_name"},
		},
	}

	a := New(root, Options{BackupDir: filepath.Join(root, ".renamify/backups")})
	_, err := a.Apply(plan)
	require.Error(t, err)

	// Original content untouched since the apply aborted before writing.
	assert.Equal(t, "hello changed done\n", readFile(t, filepath.Join(root, "a.txt")))
}

func TestApplyRenamesDirectoriesDeepestFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src/user_name/sub/file.txt"), "x")

	plan := &planmodel.Plan{
		ID: "plan1",
		Paths: []planmodel.Rename{
			{Path: "src/user_name/sub", NewPath: "src/customer_name/sub", Kind: planmodel.KindDir},
			{Path: "src/user_name", NewPath: "src/customer_name", Kind: planmodel.KindDir},
		},
	}

	a := New(root, Options{BackupDir: filepath.Join(root, ".renamify/backups")})
	res, err := a.Apply(plan)
	require.NoError(t, err)
	require.Len(t, res.Renames, 2)

	_, err = os.Stat(filepath.Join(root, "src/customer_name/sub/file.txt"))
	assert.NoError(t, err)
}

func TestApplyRollsBackOnRenameFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello user_name done\n")

	plan := &planmodel.Plan{
		ID: "plan1",
		Matches: []planmodel.MatchHunk{
			{File: "a.txt", Line: 1, Start: 6, End: 15, Content: "user_name", Replace: "customer_name"},
		},
		Paths: []planmodel.Rename{
			// "missing" does not exist, so this rename fails and should
			// trigger rollback of the content patch above.
			{Path: "missing/old.txt", NewPath: "missing/new.txt", Kind: planmodel.KindFile},
		},
	}

	a := New(root, Options{BackupDir: filepath.Join(root, ".renamify/backups")})
	_, err := a.Apply(plan)
	require.Error(t, err)

	assert.Equal(t, "hello user_name done\n", readFile(t, filepath.Join(root, "a.txt")))
}

func TestPatchRightToLeftHandlesMultipleHunks(t *testing.T) {
	data := []byte("foo and foo again")
	hunks := []planmodel.MatchHunk{
		{Start: 0, End: 3, Replace: "bazz"},
		{Start: 8, End: 11, Replace: "bazz"},
	}
	out := patchRightToLeft(data, hunks)
	assert.Equal(t, "bazz and bazz again", string(out))
}
