package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	renamifyerrors "github.com/renamify/renamify/internal/errors"
)

// Guard holds the repo-wide lock at <root>/.renamify/renamify.lock for the
// duration of an apply, undo, or redo operation. The file's content is
// "<pid>:<unix-seconds>", letting a competing process detect staleness by
// either a dead pid or an old timestamp, per spec.md §5.
type Guard struct {
	root string
}

// NewGuard creates a lock guard rooted at the repository's .renamify
// directory.
func NewGuard(root string) *Guard {
	return &Guard{root: root}
}

func (g *Guard) path() string {
	return filepath.Join(g.root, ".renamify", FileName)
}

// Check verifies no other live process holds the lock. A lock file naming
// a dead pid, or one whose timestamp is older than StaleAfter, is treated
// as abandoned and removed. Returns a *renamifyerrors.Error with
// CodeLockHeld if another process genuinely holds it.
func (g *Guard) Check() error {
	data, err := os.ReadFile(g.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read lock file: %w", err)
	}

	pid, ts, ok := parseLock(string(data))
	if !ok {
		os.Remove(g.path())
		return nil
	}

	if processExists(pid) && time.Since(time.Unix(ts, 0)) < StaleAfter {
		return renamifyerrors.ErrLockHeld(g.path(), pid)
	}

	os.Remove(g.path())
	return nil
}

// Acquire writes the current process's pid and timestamp into the lock
// file. Call Check before Acquire to surface a live conflict.
func (g *Guard) Acquire() error {
	dir := filepath.Join(g.root, ".renamify")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create .renamify dir: %w", err)
	}

	content := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().Unix())
	if err := os.WriteFile(g.path(), []byte(content), 0644); err != nil {
		return fmt.Errorf("write lock file: %w", err)
	}
	return nil
}

// Release removes the lock file. Safe to call even if it doesn't exist.
func (g *Guard) Release() {
	os.Remove(g.path())
}

func parseLock(content string) (pid int, ts int64, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(content), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	ts, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return pid, ts, true
}

// processExists checks if a process with the given PID is currently alive.
func processExists(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds; signal 0 probes liveness
	// without actually sending a signal.
	return process.Signal(syscall.Signal(0)) == nil
}
