package store

import (
	"fmt"
	"strings"
	"time"
)

// ObjectStore is the entry point: every operation acts on the current
// branch of its BranchManager. It is not safe for concurrent use.
type ObjectStore struct {
	branches *BranchManager
	now      func() time.Time
}

// Option configures an ObjectStore.
type Option func(*ObjectStore)

// WithClock sets the time source used to stamp commits.
func WithClock(now func() time.Time) Option {
	return func(s *ObjectStore) { s.now = now }
}

// New creates a store with a single empty "master" branch.
func New(opts ...Option) *ObjectStore {
	s := &ObjectStore{branches: newBranchManager(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init creates a store and runs fn against it before returning it.
func Init(fn func(*ObjectStore), opts ...Option) *ObjectStore {
	s := New(opts...)
	if fn != nil {
		fn(s)
	}
	return s
}

// Branch exposes branch lifecycle operations.
func (s *ObjectStore) Branch() *BranchManager { return s.branches }

// Add stages obj under name, replacing any staged object with that name.
func (s *ObjectStore) Add(name string, obj any) Result {
	b := s.branches.Current()
	b.staged = b.staged.put(File{Name: name, Value: obj})
	b.changes++
	return succeed(obj, "Added %s to stage.", name)
}

// Remove unstages name. Only the staging area is consulted.
func (s *ObjectStore) Remove(name string) Result {
	b := s.branches.Current()
	f, found := b.staged.find(name)
	if !found {
		return fail("Object %s is not committed.", name)
	}
	b.staged = b.staged.without(name)
	b.changes++
	return succeed(f.Value, "Added %s for removal.", name)
}

// Commit records the staging area as a new commit on the current branch.
func (s *ObjectStore) Commit(message string) Result {
	b := s.branches.Current()
	if b.changes == 0 {
		return fail("Nothing to commit, working directory clean.")
	}
	c, err := NewCommit(b.staged, message, s.now())
	if err != nil {
		return fail("Cannot commit: %v.", err)
	}
	b.commits = append(b.commits, c)
	b.committed = b.staged.clone()
	changes := b.changes
	b.changes = 0
	return succeed(c, "%s\n\t%d objects changed", c.message, changes)
}

// Checkout resets the current branch to the commit named by ref (hex hash
// or CID string). Later commits are discarded along with staged edits.
func (s *ObjectStore) Checkout(ref string) Result {
	b := s.branches.Current()
	i := b.commitIndex(ref)
	if i < 0 {
		return fail("Commit %s does not exist.", ref)
	}
	c := b.resetTo(i)
	return succeed(c, "HEAD is now at %s.", ref)
}

// Get looks name up in the committed snapshot of the current branch.
func (s *ObjectStore) Get(name string) Result {
	f, found := s.branches.Current().committed.find(name)
	if !found {
		return fail("Object %s is not committed.", name)
	}
	return succeed(f.Value, "Found object %s.", name)
}

// Staged looks name up in the staging area of the current branch.
func (s *ObjectStore) Staged(name string) Result {
	f, found := s.branches.Current().staged.find(name)
	if !found {
		return fail("Object %s is not staged.", name)
	}
	return succeed(f.Value, "Found staged object %s.", name)
}

// Log lists the current branch's commits, newest first.
func (s *ObjectStore) Log() Result {
	b := s.branches.Current()
	if len(b.commits) == 0 {
		return noCommits(b)
	}
	entries := make([]string, 0, len(b.commits))
	for i := len(b.commits) - 1; i >= 0; i-- {
		entries = append(entries, FormatLogEntry(b.commits[i]))
	}
	return succeed(nil, "%s", strings.Join(entries, "\n\n"))
}

// Head returns the most recent commit of the current branch.
func (s *ObjectStore) Head() Result {
	b := s.branches.Current()
	c := b.Head()
	if c == nil {
		return noCommits(b)
	}
	return succeed(c, "%s", c.message)
}

// FormatLogEntry renders a single commit the way Log does.
func FormatLogEntry(c *Commit) string {
	return fmt.Sprintf("Commit %s\nDate: %s\n\n\t%s", c.hash, c.Date(), c.message)
}

func noCommits(b *Branch) Result {
	return fail("Branch %s does not have any commits yet.", b.name)
}
