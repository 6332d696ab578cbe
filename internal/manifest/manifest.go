// Package manifest renders an ObjectStore as a deterministic JSON document
// for export. Nothing in the module reads a manifest back.
package manifest

import (
	"fmt"
	"time"

	"github.com/systemshift/objstore-fs/internal/store"
)

// Version is the manifest format version.
const Version = 1

// Manifest is a snapshot of every branch in a store.
type Manifest struct {
	V        int           `json:"v"`
	Current  string        `json:"current"`
	Branches []BranchEntry `json:"branches"`
}

// BranchEntry describes one branch. Head is empty for a branch with no commits.
type BranchEntry struct {
	Name      string        `json:"name"`
	Head      string        `json:"head,omitempty"`
	Changes   int           `json:"changes"`
	Commits   []CommitEntry `json:"commits"` // oldest first
	Committed []ObjectEntry `json:"committed"`
	Staged    []ObjectEntry `json:"staged"`
}

// CommitEntry describes one commit.
type CommitEntry struct {
	Hash    string        `json:"hash"`
	CID     string        `json:"cid"`
	Date    string        `json:"date"`
	Message string        `json:"message"`
	Objects []ObjectEntry `json:"objects"`
}

// ObjectEntry is a named object with its value rendered via fmt.Sprint.
type ObjectEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Build snapshots s. Branches are listed in name order.
func Build(s *store.ObjectStore) *Manifest {
	mgr := s.Branch()
	m := &Manifest{
		V:        Version,
		Current:  mgr.Current().Name(),
		Branches: []BranchEntry{},
	}
	for _, name := range mgr.Names() {
		b, _ := mgr.Lookup(name)
		m.Branches = append(m.Branches, NewBranchEntry(b))
	}
	return m
}

// NewBranchEntry describes b.
func NewBranchEntry(b *store.Branch) BranchEntry {
	e := BranchEntry{
		Name:      b.Name(),
		Changes:   b.Changes(),
		Commits:   []CommitEntry{},
		Committed: objectEntries(b.Committed()),
		Staged:    objectEntries(b.Staged()),
	}
	if head := b.Head(); head != nil {
		e.Head = head.Hash()
	}
	for _, c := range b.Commits() {
		e.Commits = append(e.Commits, NewCommitEntry(c))
	}
	return e
}

// NewCommitEntry describes c.
func NewCommitEntry(c *store.Commit) CommitEntry {
	return CommitEntry{
		Hash:    c.Hash(),
		CID:     c.CIDString(),
		Date:    c.Timestamp().Format(time.RFC3339),
		Message: c.Message(),
		Objects: objectEntries(c.Objects()),
	}
}

func objectEntries(files []store.File) []ObjectEntry {
	out := make([]ObjectEntry, len(files))
	for i, f := range files {
		out[i] = ObjectEntry{Name: f.Name, Value: fmt.Sprint(f.Value)}
	}
	return out
}

// Encode returns the canonical JSON encoding of m.
func (m *Manifest) Encode() ([]byte, error) {
	return CanonicalJSON(m)
}

// WriteFile encodes m and writes it to path atomically.
func (m *Manifest) WriteFile(path string) error {
	data, err := m.Encode()
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return SafeWrite(path, append(data, '\n'), 0644)
}
