// Package planmodel implements C8: the immutable Plan record produced by
// the scanner and consumed by the apply engine.
package planmodel

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// RenameKind distinguishes a file rename from a directory rename.
type RenameKind string

const (
	KindFile RenameKind = "file"
	KindDir  RenameKind = "dir"
)

// Version is the Plan schema version written to plan.json.
const Version = "1.0.0"

// MatchHunk is one contiguous rewrite within a single line of a single
// file, per spec.md §3.
type MatchHunk struct {
	File            string  `json:"file"`
	Line            uint64  `json:"line"`
	ByteOffset      uint32  `json:"byte_offset"`
	CharOffset      uint32  `json:"char_offset"`
	Variant         string  `json:"variant"`
	Content         string  `json:"content"`
	Replace         string  `json:"replace"`
	Start           int     `json:"start"`
	End             int     `json:"end"`
	LineBefore      *string `json:"line_before,omitempty"`
	LineAfter       *string `json:"line_after,omitempty"`
	CoercionApplied *string `json:"coercion_applied,omitempty"`
	PatchHash       *string `json:"patch_hash,omitempty"`
}

// Rename is a proposed file or directory rename.
type Rename struct {
	Path            string     `json:"path"`
	NewPath         string     `json:"new_path"`
	Kind            RenameKind `json:"kind"`
	CoercionApplied *string    `json:"coercion_applied,omitempty"`
}

// Stats summarizes a Plan's scan results.
type Stats struct {
	FilesScanned      int            `json:"files_scanned"`
	TotalMatches      int            `json:"total_matches"`
	MatchesByVariant  map[string]int `json:"matches_by_variant"`
	FilesWithMatches  int            `json:"files_with_matches"`
}

// Plan is the deterministic, immutable record describing a proposed
// transformation, per spec.md §3.
type Plan struct {
	ID                 string     `json:"id"`
	CreatedAt          time.Time  `json:"created_at"`
	Search             string     `json:"search"`
	Replace            string     `json:"replace"`
	Styles             []string   `json:"styles"`
	Includes           []string   `json:"includes"`
	Excludes           []string   `json:"excludes"`
	Matches            []MatchHunk `json:"matches"`
	Paths              []Rename   `json:"paths"`
	Stats              Stats      `json:"stats"`
	CreatedDirectories []string   `json:"created_directories,omitempty"`
	Version            string     `json:"version"`
}

// Sort orders Matches by (file, line, byte_offset) and Paths with
// directories before files, deepest-first among directories, per spec.md
// §3/§5, then computes the stable ID. Call after all matches/renames have
// been appended.
func (p *Plan) Sort() {
	sort.SliceStable(p.Matches, func(i, j int) bool {
		a, b := p.Matches[i], p.Matches[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.ByteOffset < b.ByteOffset
	})

	sort.SliceStable(p.Paths, func(i, j int) bool {
		a, b := p.Paths[i], p.Paths[j]
		if a.Kind != b.Kind {
			return a.Kind == KindDir // dirs before files
		}
		if a.Kind == KindDir {
			return depth(a.Path) > depth(b.Path) // deepest first
		}
		return a.Path < b.Path
	})

	p.ID = computeID(p)
}

func depth(path string) int {
	n := 0
	for _, r := range path {
		if r == '/' {
			n++
		}
	}
	return n
}

// computeID hashes the canonical JSON serialization of the plan's inputs
// and results into a stable, deterministic identifier.
func computeID(p *Plan) string {
	type idInput struct {
		Search   string      `json:"search"`
		Replace  string      `json:"replace"`
		Styles   []string    `json:"styles"`
		Includes []string    `json:"includes"`
		Excludes []string    `json:"excludes"`
		Matches  []MatchHunk `json:"matches"`
		Paths    []Rename    `json:"paths"`
	}
	in := idInput{p.Search, p.Replace, p.Styles, p.Includes, p.Excludes, p.Matches, p.Paths}
	data, err := json.Marshal(in)
	if err != nil {
		// Marshal of a plain struct of strings/slices cannot fail.
		panic(fmt.Sprintf("plan: marshal id input: %v", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}

// ToJSON writes the Plan as pretty JSON, per spec.md §4.8.
func (p *Plan) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// FromJSON performs strict schema validation: unknown fields are rejected,
// per spec.md §4.8.
func FromJSON(data []byte) (*Plan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &p, nil
}

// HasOverlap reports whether any two hunks in the same file overlap, per
// invariant 8 in spec.md §8. Intended for tests and defensive checks before
// apply.
func (p *Plan) HasOverlap() bool {
	byFile := map[string][]MatchHunk{}
	for _, h := range p.Matches {
		byFile[h.File] = append(byFile[h.File], h)
	}
	for _, hunks := range byFile {
		for i := 1; i < len(hunks); i++ {
			if hunks[i-1].End > hunks[i].Start {
				return true
			}
		}
	}
	return false
}
