// Package lock provides repo-wide execution protection for renamify's
// apply/undo/redo operations via a single lock file.
//
// Design Philosophy:
// - One lock file per repository: .renamify/renamify.lock
// - No cross-machine coordination; this only protects against two local
//   renamify processes racing on the same working tree
// - A stale lock (dead pid, or timestamp older than the staleness window)
//   is reclaimed automatically rather than requiring manual cleanup
package lock

import "time"

// FileName is the name of the lock file under .renamify/.
const FileName = "renamify.lock"

// StaleAfter is how long a lock may sit unrefreshed before it is
// considered abandoned, per spec.md §5.
const StaleAfter = 5 * time.Minute
