package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renamify/renamify/internal/apply"
	"github.com/renamify/renamify/internal/planmodel"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// applyAndRecord runs a real apply through internal/apply and records it,
// so undo/redo tests exercise the same backup layout apply produces.
func applyAndRecord(t *testing.T, root string, mgr *Manager, plan *planmodel.Plan) *HistoryEntry {
	t.Helper()
	a := apply.New(root, apply.Options{BackupDir: filepath.Join(root, ".renamify/backups")})
	res, err := a.Apply(plan)
	require.NoError(t, err)
	entry, err := mgr.RecordApply(plan, res)
	require.NoError(t, err)
	return entry
}

func TestUndoRestoresContentAndRenames(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "src/user_name/file.txt"), "hello user_name\n")

	plan := &planmodel.Plan{
		ID: "plan1",
		Matches: []planmodel.MatchHunk{
			{File: "src/user_name/file.txt", Line: 1, Start: 6, End: 15, Content: "user_name", Replace: "customer_name"},
		},
		Paths: []planmodel.Rename{
			{Path: "src/user_name", NewPath: "src/customer_name", Kind: planmodel.KindDir},
		},
	}

	mgr := NewManager(root, filepath.Join(root, ".renamify/backups"))
	applyAndRecord(t, root, mgr, plan)

	assert.Equal(t, "hello customer_name\n", mustRead(t, filepath.Join(root, "src/customer_name/file.txt")))

	entry, err := mgr.Undo(Latest, false)
	require.NoError(t, err)
	assert.Equal(t, "plan1", *entry.RevertOf)

	assert.Equal(t, "hello user_name\n", mustRead(t, filepath.Join(root, "src/user_name/file.txt")))
	_, err = os.Stat(filepath.Join(root, "src/customer_name"))
	assert.True(t, os.IsNotExist(err))
}

func TestRedoReappliesAfterUndo(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.txt"), "hello user_name\n")

	plan := &planmodel.Plan{
		ID: "plan1",
		Matches: []planmodel.MatchHunk{
			{File: "a.txt", Line: 1, Start: 6, End: 15, Content: "user_name", Replace: "customer_name"},
		},
	}

	mgr := NewManager(root, filepath.Join(root, ".renamify/backups"))
	applyAndRecord(t, root, mgr, plan)

	_, err := mgr.Undo(Latest, false)
	require.NoError(t, err)
	assert.Equal(t, "hello user_name\n", mustRead(t, filepath.Join(root, "a.txt")))

	redone, err := mgr.Redo(Latest, false)
	require.NoError(t, err)
	assert.Equal(t, "plan1", *redone.RedoOf)
	assert.Equal(t, "hello customer_name\n", mustRead(t, filepath.Join(root, "a.txt")))
}

func TestUndoAbortsOnChecksumMismatchWithoutForce(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "a.txt"), "hello user_name\n")

	plan := &planmodel.Plan{
		ID: "plan1",
		Matches: []planmodel.MatchHunk{
			{File: "a.txt", Line: 1, Start: 6, End: 15, Content: "user_name", Replace: "customer_name"},
		},
	}
	mgr := NewManager(root, filepath.Join(root, ".renamify/backups"))
	applyAndRecord(t, root, mgr, plan)

	mustWrite(t, filepath.Join(root, "a.txt"), "manually edited since apply\n")

	_, err := mgr.Undo(Latest, false)
	assert.Error(t, err)

	_, err = mgr.Undo(Latest, true)
	assert.NoError(t, err)
}

func TestUndoUnknownIDFails(t *testing.T) {
	root := t.TempDir()
	mgr := NewManager(root, filepath.Join(root, ".renamify/backups"))
	_, err := mgr.Undo("does-not-exist", false)
	assert.Error(t, err)
}

func TestPruneDropsOldestEntries(t *testing.T) {
	root := t.TempDir()
	mgr := NewManager(root, filepath.Join(root, ".renamify/backups"))

	for i := 0; i < 3; i++ {
		name := filepath.Join(root, "f"+string(rune('0'+i))+".txt")
		mustWrite(t, name, "x")
		plan := &planmodel.Plan{ID: "plan" + string(rune('0'+i))}
		applyAndRecord(t, root, mgr, plan)
	}

	require.NoError(t, mgr.Prune(1))
	entries, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plan2", entries[0].ID)
}
