// Package history implements C10: the append-only history log and its
// undo/redo/prune operations.
package history

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/renamify/renamify/internal/planmodel"
	"github.com/renamify/renamify/internal/util"
)

// FileName is the history log's filename under <repo>/.renamify/.
const FileName = "history.json"

// RenamePair is one (from, to) path pair recorded on a HistoryEntry.
type RenamePair struct {
	From string              `json:"from"`
	To   string              `json:"to"`
	Kind planmodel.RenameKind `json:"kind"`
}

// HistoryEntry is one append-only record of an apply, undo, or redo
// operation, per spec.md §3.
type HistoryEntry struct {
	ID            string            `json:"id"`
	CreatedAt     time.Time         `json:"created_at"`
	Search        string            `json:"search"`
	Replace       string            `json:"replace"`
	Styles        []string          `json:"styles"`
	Includes      []string          `json:"includes"`
	Excludes      []string          `json:"excludes"`
	AffectedFiles map[string]string `json:"affected_files"`
	Renames       []RenamePair      `json:"renames"`
	BackupsPath   string            `json:"backups_path"`
	RevertOf      *string           `json:"revert_of,omitempty"`
	RedoOf        *string           `json:"redo_of,omitempty"`
}

// Store persists the history log as a single JSON array at
// <root>/.renamify/history.json.
type Store struct {
	Root string
}

// NewStore creates a Store rooted at root.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) path() string {
	return filepath.Join(s.Root, ".renamify", FileName)
}

// Load reads the history log, returning an empty slice if it doesn't
// exist yet.
func (s *Store) Load() ([]HistoryEntry, error) {
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var entries []HistoryEntry
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save writes the full history log atomically.
func (s *Store) Save(entries []HistoryEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path()), 0755); err != nil {
		return err
	}
	return util.AtomicWriteFile(s.path(), data, 0644)
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
