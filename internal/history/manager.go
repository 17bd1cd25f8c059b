package history

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/renamify/renamify/internal/apply"
	renamifyerrors "github.com/renamify/renamify/internal/errors"
	"github.com/renamify/renamify/internal/planmodel"
	"github.com/renamify/renamify/internal/util"
)

// Latest is the literal id accepted by Undo and Redo in place of an
// explicit entry id, per spec.md §4.10.
const Latest = "latest"

// Manager ties the history log to the backups directory it references.
type Manager struct {
	Root      string
	BackupDir string
	store     *Store
}

// NewManager creates a Manager rooted at root, with backups written under
// backupDir (normally <root>/.renamify/backups).
func NewManager(root, backupDir string) *Manager {
	return &Manager{Root: root, BackupDir: backupDir, store: NewStore(root)}
}

// RecordApply appends a HistoryEntry describing a successful apply.
func (m *Manager) RecordApply(plan *planmodel.Plan, res *apply.Result) (*HistoryEntry, error) {
	entries, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	affected := make(map[string]string, len(res.Files))
	for _, f := range res.Files {
		affected[f.Path] = f.After
	}
	renames := make([]RenamePair, len(res.Renames))
	for i, r := range res.Renames {
		renames[i] = RenamePair{From: r.From, To: r.To, Kind: r.Kind}
	}

	entry := HistoryEntry{
		ID:            plan.ID,
		CreatedAt:     time.Now().UTC(),
		Search:        plan.Search,
		Replace:       plan.Replace,
		Styles:        plan.Styles,
		Includes:      plan.Includes,
		Excludes:      plan.Excludes,
		AffectedFiles: affected,
		Renames:       renames,
		BackupsPath:   res.BackupDir,
	}

	entries = append(entries, entry)
	if err := m.store.Save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the full history log, oldest first.
func (m *Manager) List() ([]HistoryEntry, error) {
	return m.store.Load()
}

// Undo reverses the effect of entry id (or the literal "latest"), per
// spec.md §4.10.
func (m *Manager) Undo(id string, force bool) (*HistoryEntry, error) {
	entries, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	target, err := resolveUndoTarget(entries, id)
	if err != nil {
		return nil, err
	}

	// Content was patched before the entry's renames ran, so each affected
	// file now sits at its recorded path moved by those renames.
	current := make(map[string]string, len(target.AffectedFiles))
	currentSums := make(map[string]string, len(target.AffectedFiles))
	for p, sum := range target.AffectedFiles {
		cur := p
		for _, r := range target.Renames {
			if cur == r.From || strings.HasPrefix(cur, r.From+"/") {
				cur = r.To + cur[len(r.From):]
			}
		}
		current[p] = cur
		currentSums[cur] = sum
	}

	if !force {
		if err := m.verifyChecksums(currentSums); err != nil {
			return nil, err
		}
	}

	revertID := uuid.NewString()
	revertBackupDir := filepath.Join(m.BackupDir, revertID)

	affected := make(map[string]string, len(target.AffectedFiles))
	paths := sortedKeys(target.AffectedFiles)
	for _, path := range paths {
		full := filepath.Join(m.Root, filepath.FromSlash(current[path]))

		data, err := os.ReadFile(full)
		if err == nil {
			if err := backupFile(filepath.Join(revertBackupDir, path), data); err != nil {
				return nil, renamifyerrors.Wrap(err, "backing up "+path)
			}
		}

		original, err := os.ReadFile(filepath.Join(target.BackupsPath, path))
		if err != nil {
			return nil, renamifyerrors.ErrMissingBackup(target.ID, path)
		}
		if err := util.AtomicWriteFile(full, original, 0644); err != nil {
			return nil, renamifyerrors.Wrap(err, "restoring "+path)
		}
		affected[path] = checksum(original)
	}

	reversed := reverseRenames(target.Renames)
	sortRenamesShallowestFirst(reversed)
	for _, r := range reversed {
		if err := renamePath(m.Root, r.From, r.To); err != nil {
			return nil, renamifyerrors.Wrap(err, "reversing rename "+r.From)
		}
	}

	entry := HistoryEntry{
		ID:            revertID,
		CreatedAt:     time.Now().UTC(),
		Search:        target.Search,
		Replace:       target.Replace,
		Styles:        target.Styles,
		Includes:      target.Includes,
		Excludes:      target.Excludes,
		AffectedFiles: affected,
		Renames:       reversed,
		BackupsPath:   revertBackupDir,
		RevertOf:      &target.ID,
	}
	entries = append(entries, entry)
	if err := m.store.Save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Redo replays the effect undone by the most recent revert of id (or the
// literal "latest"), per spec.md §4.10.
func (m *Manager) Redo(id string, force bool) (*HistoryEntry, error) {
	entries, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	revertEntry, originalID, err := resolveRedoTarget(entries, id)
	if err != nil {
		return nil, err
	}

	if !force {
		if err := m.verifyChecksums(revertEntry.AffectedFiles); err != nil {
			return nil, err
		}
	}

	redoID := uuid.NewString()
	redoBackupDir := filepath.Join(m.BackupDir, redoID)

	affected := make(map[string]string, len(revertEntry.AffectedFiles))
	paths := sortedKeys(revertEntry.AffectedFiles)
	for _, path := range paths {
		full := filepath.Join(m.Root, filepath.FromSlash(path))

		current, err := os.ReadFile(full)
		if err == nil {
			if err := backupFile(filepath.Join(redoBackupDir, path), current); err != nil {
				return nil, renamifyerrors.Wrap(err, "backing up "+path)
			}
		}

		forward, err := os.ReadFile(filepath.Join(revertEntry.BackupsPath, path))
		if err != nil {
			return nil, renamifyerrors.ErrMissingBackup(revertEntry.ID, path)
		}
		if err := util.AtomicWriteFile(full, forward, 0644); err != nil {
			return nil, renamifyerrors.Wrap(err, "restoring "+path)
		}
		affected[path] = checksum(forward)
	}

	forwardRenames := reverseRenames(revertEntry.Renames)
	sortRenamesDeepestFirst(forwardRenames)
	for _, r := range forwardRenames {
		if err := renamePath(m.Root, r.From, r.To); err != nil {
			return nil, renamifyerrors.Wrap(err, "reapplying rename "+r.From)
		}
	}

	entry := HistoryEntry{
		ID:            redoID,
		CreatedAt:     time.Now().UTC(),
		Search:        revertEntry.Search,
		Replace:       revertEntry.Replace,
		Styles:        revertEntry.Styles,
		Includes:      revertEntry.Includes,
		Excludes:      revertEntry.Excludes,
		AffectedFiles: affected,
		Renames:       forwardRenames,
		BackupsPath:   redoBackupDir,
		RedoOf:        &originalID,
	}
	entries = append(entries, entry)
	if err := m.store.Save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Prune drops the oldest entries past maxEntries and their backup
// directories.
func (m *Manager) Prune(maxEntries int) error {
	entries, err := m.store.Load()
	if err != nil {
		return err
	}
	if len(entries) <= maxEntries {
		return nil
	}

	drop := entries[:len(entries)-maxEntries]
	keep := entries[len(entries)-maxEntries:]
	for _, e := range drop {
		if e.BackupsPath != "" {
			os.RemoveAll(e.BackupsPath)
		}
	}
	return m.store.Save(keep)
}

func (m *Manager) verifyChecksums(affected map[string]string) error {
	for path, want := range affected {
		full := filepath.Join(m.Root, filepath.FromSlash(path))
		data, err := os.ReadFile(full)
		if err != nil {
			return renamifyerrors.ErrChecksumMismatch(path)
		}
		if checksum(data) != want {
			return renamifyerrors.ErrChecksumMismatch(path)
		}
	}
	return nil
}

func resolveUndoTarget(entries []HistoryEntry, id string) (*HistoryEntry, error) {
	if id == Latest {
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].RevertOf == nil {
				return &entries[i], nil
			}
		}
		return nil, renamifyerrors.ErrUnknownPlanID(Latest)
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, renamifyerrors.ErrUnknownPlanID(id)
}

func resolveRedoTarget(entries []HistoryEntry, id string) (*HistoryEntry, string, error) {
	if id == Latest {
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].RevertOf != nil {
				return &entries[i], *entries[i].RevertOf, nil
			}
		}
		return nil, "", renamifyerrors.ErrUnknownPlanID(Latest)
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].RevertOf != nil && *entries[i].RevertOf == id {
			return &entries[i], id, nil
		}
	}
	return nil, "", renamifyerrors.ErrUnknownPlanID(id)
}

func reverseRenames(renames []RenamePair) []RenamePair {
	out := make([]RenamePair, len(renames))
	for i, r := range renames {
		out[i] = RenamePair{From: r.To, To: r.From, Kind: r.Kind}
	}
	return out
}

// sortRenamesShallowestFirst reverses the forward apply order (dirs
// deepest-first, then files): files first, then directories shallowest
// first, per spec.md §4.10's reversal rule.
func sortRenamesShallowestFirst(renames []RenamePair) {
	sort.SliceStable(renames, func(i, j int) bool {
		a, b := renames[i], renames[j]
		if a.Kind != b.Kind {
			return a.Kind == planmodel.KindFile
		}
		if a.Kind == planmodel.KindDir {
			return depth(a.From) < depth(b.From)
		}
		return a.From < b.From
	})
}

func sortRenamesDeepestFirst(renames []RenamePair) {
	sort.SliceStable(renames, func(i, j int) bool {
		a, b := renames[i], renames[j]
		if a.Kind != b.Kind {
			return a.Kind == planmodel.KindDir
		}
		if a.Kind == planmodel.KindDir {
			return depth(a.From) > depth(b.From)
		}
		return a.From < b.From
	})
}

func depth(path string) int {
	return strings.Count(path, "/")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func backupFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0644)
}

func renamePath(root, from, to string) error {
	if from == to {
		return nil
	}
	fromFull := filepath.Join(root, filepath.FromSlash(from))
	toFull := filepath.Join(root, filepath.FromSlash(to))
	if err := os.MkdirAll(filepath.Dir(toFull), 0755); err != nil {
		return err
	}
	if strings.EqualFold(fromFull, toFull) {
		staged := toFull + ".renamify-stage"
		if err := os.Rename(fromFull, staged); err != nil {
			return err
		}
		return os.Rename(staged, toFull)
	}
	return os.Rename(fromFull, toFull)
}
