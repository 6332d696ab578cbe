package fuse

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/systemshift/objstore-fs/internal/manifest"
	"github.com/systemshift/objstore-fs/internal/store"
)

// Snapshot selects which of a branch's object sets a directory shows.
type Snapshot int

const (
	Committed Snapshot = iota
	Staged
)

func (k Snapshot) dirName() string {
	if k == Staged {
		return "staged"
	}
	return "objects"
}

// View renders store state as file contents. The store is single-writer, so
// every access from FUSE callbacks goes through mu.
type View struct {
	mu sync.Mutex
	s  *store.ObjectStore
}

// NewView wraps s. Callers must not use s directly while it is mounted.
func NewView(s *store.ObjectStore) *View {
	return &View{s: s}
}

// Do runs fn with exclusive access to the store.
func (v *View) Do(fn func(*store.ObjectStore)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.s)
}

func (v *View) branch(name string, fn func(*store.Branch)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.s.Branch().Lookup(name)
	if ok {
		fn(b)
	}
	return ok
}

// BranchList returns the branch listing with a trailing newline.
func (v *View) BranchList() []byte {
	v.mu.Lock()
	defer v.mu.Unlock()
	return []byte(v.s.Branch().List().Message() + "\n")
}

// BranchNames returns all branch names, sorted.
func (v *View) BranchNames() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.s.Branch().Names()
}

// HasBranch reports whether name exists.
func (v *View) HasBranch(name string) bool {
	return v.branch(name, func(*store.Branch) {})
}

// Head returns the head commit hash of a branch, or "(none)".
func (v *View) Head(branch string) ([]byte, bool) {
	var data []byte
	ok := v.branch(branch, func(b *store.Branch) {
		if head := b.Head(); head != nil {
			data = []byte(head.Hash() + "\n")
		} else {
			data = []byte("(none)\n")
		}
	})
	return data, ok
}

// ObjectNames lists the object names of one snapshot of a branch.
func (v *View) ObjectNames(branch string, k Snapshot) ([]string, bool) {
	var names []string
	ok := v.branch(branch, func(b *store.Branch) {
		for _, f := range snapshot(b, k) {
			names = append(names, f.Name)
		}
	})
	return names, ok
}

// Object returns a single object rendered with fmt.Sprint.
func (v *View) Object(branch string, k Snapshot, name string) ([]byte, bool) {
	var data []byte
	found := false
	v.branch(branch, func(b *store.Branch) {
		for _, f := range snapshot(b, k) {
			if f.Name == name {
				data = []byte(fmt.Sprint(f.Value) + "\n")
				found = true
				return
			}
		}
	})
	return data, found
}

// LogLen returns the number of commits on a branch.
func (v *View) LogLen(branch string) (int, bool) {
	n := 0
	ok := v.branch(branch, func(b *store.Branch) {
		n = len(b.Commits())
	})
	return n, ok
}

// LogEntry returns commit i of a branch as indented JSON, 0 being the newest.
func (v *View) LogEntry(branch string, i int) ([]byte, bool) {
	var entry *manifest.CommitEntry
	v.branch(branch, func(b *store.Branch) {
		commits := b.Commits()
		if i < 0 || i >= len(commits) {
			return
		}
		e := manifest.NewCommitEntry(commits[len(commits)-1-i])
		entry = &e
	})
	if entry == nil {
		return nil, false
	}
	data, _ := json.MarshalIndent(entry, "", "  ")
	return append(data, '\n'), true
}

func snapshot(b *store.Branch, k Snapshot) []store.File {
	if k == Staged {
		return b.Staged()
	}
	return b.Committed()
}
