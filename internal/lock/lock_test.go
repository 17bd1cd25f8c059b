package lock

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	renamifyerrors "github.com/renamify/renamify/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardAcquireRelease(t *testing.T) {
	root := t.TempDir()
	g := NewGuard(root)

	require.NoError(t, g.Check())
	require.NoError(t, g.Acquire())

	lockPath := filepath.Join(root, ".renamify", FileName)
	_, err := os.Stat(lockPath)
	assert.NoError(t, err, "lock file should exist")

	g.Release()
	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err), "lock file should be removed")
}

func TestGuardRejectsLiveConflict(t *testing.T) {
	root := t.TempDir()
	g := NewGuard(root)
	require.NoError(t, g.Acquire())

	other := NewGuard(root)
	err := other.Check()
	require.Error(t, err)

	renamifyErr, ok := err.(*renamifyerrors.Error)
	require.True(t, ok, "error should be *renamifyerrors.Error")
	assert.Equal(t, renamifyerrors.CodeLockHeld, renamifyErr.Code)
}

func TestGuardReclaimsDeadPID(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".renamify"), 0755))

	lockPath := filepath.Join(root, ".renamify", FileName)
	// A pid that cannot plausibly be alive, with a fresh timestamp.
	content := "999999:" + strconv.FormatInt(time.Now().Unix(), 10)
	require.NoError(t, os.WriteFile(lockPath, []byte(content), 0644))

	g := NewGuard(root)
	require.NoError(t, g.Check(), "dead pid should be reclaimed")

	_, err := os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err), "stale lock file should be removed")
}

func TestGuardReclaimsOldTimestamp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".renamify"), 0755))

	lockPath := filepath.Join(root, ".renamify", FileName)
	old := time.Now().Add(-10 * time.Minute).Unix()
	content := strconv.Itoa(os.Getpid()) + ":" + strconv.FormatInt(old, 10)
	require.NoError(t, os.WriteFile(lockPath, []byte(content), 0644))

	g := NewGuard(root)
	require.NoError(t, g.Check(), "stale timestamp should be reclaimed even with a live pid")
}

func TestGuardMalformedFileIsIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".renamify"), 0755))

	lockPath := filepath.Join(root, ".renamify", FileName)
	require.NoError(t, os.WriteFile(lockPath, []byte("not-a-lock"), 0644))

	g := NewGuard(root)
	assert.NoError(t, g.Check())
}
