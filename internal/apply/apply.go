// Package apply implements C9: the two-phase atomic apply engine that
// executes a Plan's content patches and path renames against the
// filesystem, with backup capture and rollback on failure.
package apply

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"

	renamifyerrors "github.com/renamify/renamify/internal/errors"
	"github.com/renamify/renamify/internal/planmodel"
	"github.com/renamify/renamify/internal/util"
)

// Options threads the CLI flags named in spec.md §6 into the apply
// engine.
type Options struct {
	BackupDir    string
	Commit       bool
	Force        bool
	SkipSymlinks bool
}

// FileChecksum is the pre- and post-apply checksum of one patched file,
// recorded onto the resulting HistoryEntry.
type FileChecksum struct {
	Path     string
	Before   string
	After    string
	BackedUp bool
}

// RenamePair is one executed (from, to) rename, recorded onto the
// resulting HistoryEntry.
type RenamePair struct {
	From string
	To   string
	Kind planmodel.RenameKind
}

// Result summarizes a successful apply, enough to build a HistoryEntry.
type Result struct {
	PlanID     string
	BackupDir  string
	Files      []FileChecksum
	Renames    []RenamePair
	CommitHash string
}

// Applier executes a Plan against a repository root.
type Applier struct {
	Root    string
	Options Options
}

// New creates an Applier.
func New(root string, opts Options) *Applier {
	return &Applier{Root: root, Options: opts}
}

// Apply runs Phase A (content patches) then Phase B (path renames), per
// spec.md §4.9. On any failure it rolls back everything already done and
// returns the original error.
func (a *Applier) Apply(plan *planmodel.Plan) (*Result, error) {
	backupRoot := filepath.Join(a.Options.BackupDir, plan.ID)
	res := &Result{PlanID: plan.ID, BackupDir: backupRoot}

	if err := a.applyContent(plan, backupRoot, res); err != nil {
		a.rollback(res)
		return nil, err
	}

	if err := a.applyRenames(plan, res); err != nil {
		a.rollback(res)
		return nil, err
	}

	if a.Options.Commit {
		hash, err := a.commit(plan)
		if err != nil {
			a.rollback(res)
			return nil, err
		}
		res.CommitHash = hash
	}

	return res, nil
}

// applyContent implements Phase A: group hunks by file, verify, back up,
// patch, and atomically rewrite each file in lexicographic order.
func (a *Applier) applyContent(plan *planmodel.Plan, backupRoot string, res *Result) error {
	byFile := map[string][]planmodel.MatchHunk{}
	for _, h := range plan.Matches {
		byFile[h.File] = append(byFile[h.File], h)
	}

	var files []string
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, relPath := range files {
		hunks := byFile[relPath]
		full := filepath.Join(a.Root, filepath.FromSlash(relPath))

		data, err := os.ReadFile(full)
		if err != nil {
			return renamifyerrors.Wrap(err, "reading "+relPath)
		}

		before := checksum(data)
		for _, h := range hunks {
			if h.End > len(data) || h.Start < 0 || h.Start > h.End {
				return renamifyerrors.ErrHunkMismatch(relPath, h.Line)
			}
			if string(data[h.Start:h.End]) != h.Content {
				return renamifyerrors.ErrHunkMismatch(relPath, h.Line)
			}
		}

		backupPath := filepath.Join(backupRoot, relPath)
		if err := backupFile(backupPath, data); err != nil {
			return renamifyerrors.Wrap(err, "backing up "+relPath)
		}

		patched := patchRightToLeft(data, hunks)

		info, err := os.Stat(full)
		perm := os.FileMode(0644)
		if err == nil {
			perm = info.Mode().Perm()
		}
		if err := util.AtomicWriteFile(full, patched, perm); err != nil {
			return renamifyerrors.Wrap(err, "writing "+relPath)
		}

		slog.Debug("apply: patched file", "path", relPath, "hunks", len(hunks))

		res.Files = append(res.Files, FileChecksum{
			Path:     relPath,
			Before:   before,
			After:    checksum(patched),
			BackedUp: true,
		})
	}

	return nil
}

// patchRightToLeft rewrites data by applying hunks from the
// highest byte offset to the lowest so earlier offsets stay valid.
func patchRightToLeft(data []byte, hunks []planmodel.MatchHunk) []byte {
	ordered := append([]planmodel.MatchHunk(nil), hunks...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	out := append([]byte(nil), data...)
	for _, h := range ordered {
		var buf []byte
		buf = append(buf, out[:h.Start]...)
		buf = append(buf, []byte(h.Replace)...)
		buf = append(buf, out[h.End:]...)
		out = buf
	}
	return out
}

// applyRenames implements Phase B: directories deepest-first, then
// files, staging case-only renames through a temporary name.
func (a *Applier) applyRenames(plan *planmodel.Plan, res *Result) error {
	for _, r := range plan.Paths {
		// Plan paths are full before/after paths. Follow the directory
		// renames already executed to where r.Path is now, then change only
		// its last segment; parents take their new names from their own
		// directory renames.
		fromRel := r.Path
		for _, done := range res.Renames {
			if strings.HasPrefix(fromRel, done.From+"/") {
				fromRel = done.To + fromRel[len(done.From):]
			}
		}
		toRel := path.Join(path.Dir(fromRel), path.Base(r.NewPath))

		if a.Options.SkipSymlinks {
			full := filepath.Join(a.Root, filepath.FromSlash(fromRel))
			if info, err := os.Lstat(full); err == nil && info.Mode()&os.ModeSymlink != 0 {
				continue
			}
		}

		from := filepath.Join(a.Root, filepath.FromSlash(fromRel))
		to := filepath.Join(a.Root, filepath.FromSlash(toRel))

		if err := renameOne(from, to); err != nil {
			return renamifyerrors.Wrap(err, "renaming "+r.Path)
		}

		slog.Debug("apply: renamed path", "from", fromRel, "to", toRel, "kind", r.Kind)
		res.Renames = append(res.Renames, RenamePair{From: fromRel, To: toRel, Kind: r.Kind})
	}
	return nil
}

// renameOne performs a single rename, staging through a temporary sibling
// name when the source and target differ only in case (the common
// case-insensitive-filesystem collision).
func renameOne(from, to string) error {
	if from == to {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return err
	}
	if strings.EqualFold(from, to) {
		staged := to + ".renamify-stage"
		if err := os.Rename(from, staged); err != nil {
			return err
		}
		return os.Rename(staged, to)
	}
	return os.Rename(from, to)
}

// rollback restores patched files from their backups and reverses
// already-executed renames, in reverse order, logging each step.
func (a *Applier) rollback(res *Result) {
	for i := len(res.Renames) - 1; i >= 0; i-- {
		r := res.Renames[i]
		from := filepath.Join(a.Root, filepath.FromSlash(r.To))
		to := filepath.Join(a.Root, filepath.FromSlash(r.From))
		if err := renameOne(from, to); err != nil {
			slog.Warn("apply: rollback rename failed", "from", r.To, "to", r.From, "error", err)
		}
	}

	for _, f := range res.Files {
		if !f.BackedUp {
			continue
		}
		backupPath := filepath.Join(res.BackupDir, f.Path)
		full := filepath.Join(a.Root, filepath.FromSlash(f.Path))
		data, err := os.ReadFile(backupPath)
		if err != nil {
			slog.Warn("apply: rollback restore failed", "path", f.Path, "error", err)
			continue
		}
		if err := util.AtomicWriteFile(full, data, 0644); err != nil {
			slog.Warn("apply: rollback restore failed", "path", f.Path, "error", err)
		}
	}
}

// commit stages and commits the repository's current working tree with a
// generated message, per spec.md §4.9.
func (a *Applier) commit(plan *planmodel.Plan) (string, error) {
	cmds := [][]string{
		{"git", "add", "-A"},
		{"git", "commit", "-m", "renamify: rename " + plan.Search + " -> " + plan.Replace},
	}
	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = a.Root
		if out, err := cmd.CombinedOutput(); err != nil {
			return "", renamifyerrors.Wrap(err, string(out))
		}
	}

	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = a.Root
	out, err := cmd.Output()
	if err != nil {
		return "", renamifyerrors.Wrap(err, "reading commit hash")
	}
	hash := string(out)
	if n := len(hash); n > 0 && hash[n-1] == '\n' {
		hash = hash[:n-1]
	}
	return hash, nil
}

func backupFile(backupPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(backupPath), 0755); err != nil {
		return err
	}
	return util.AtomicWriteFile(backupPath, data, 0644)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
