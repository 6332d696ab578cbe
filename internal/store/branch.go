package store

// Branch is a named line of history with its own staging area.
// committed holds the snapshot as of the last commit; staged is the working
// set for the next one. The two never share backing arrays.
type Branch struct {
	name      string
	commits   []*Commit
	committed files
	staged    files
	changes   int
}

func newBranch(name string) *Branch {
	return &Branch{name: name}
}

// fork copies b's history and both snapshots under a new name.
func (b *Branch) fork(name string) *Branch {
	commits := make([]*Commit, len(b.commits))
	copy(commits, b.commits)
	return &Branch{
		name:      name,
		commits:   commits,
		committed: b.committed.clone(),
		staged:    b.staged.clone(),
	}
}

func (b *Branch) Name() string { return b.name }

// Commits returns the history, oldest first.
func (b *Branch) Commits() []*Commit {
	out := make([]*Commit, len(b.commits))
	copy(out, b.commits)
	return out
}

func (b *Branch) Committed() []File { return b.committed.clone() }

func (b *Branch) Staged() []File { return b.staged.clone() }

// Changes is the number of add/remove operations since the last commit.
func (b *Branch) Changes() int { return b.changes }

// Head returns the most recent commit, or nil if there is none.
func (b *Branch) Head() *Commit {
	if len(b.commits) == 0 {
		return nil
	}
	return b.commits[len(b.commits)-1]
}

func (b *Branch) commitIndex(ref string) int {
	for i, c := range b.commits {
		if c.matches(ref) {
			return i
		}
	}
	return -1
}

// resetTo truncates history after commits[i] and restores its snapshot into
// both committed and staged state.
func (b *Branch) resetTo(i int) *Commit {
	c := b.commits[i]
	b.commits = b.commits[:i+1:i+1]
	b.committed = c.objects.clone()
	b.staged = c.objects.clone()
	return c
}
