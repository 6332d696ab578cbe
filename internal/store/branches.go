package store

import (
	"sort"
	"strings"
)

// DefaultBranch is the branch every new store starts on.
const DefaultBranch = "master"

// BranchManager owns the set of branches and tracks the current one by name.
type BranchManager struct {
	branches map[string]*Branch
	current  string
}

func newBranchManager() *BranchManager {
	return &BranchManager{
		branches: map[string]*Branch{DefaultBranch: newBranch(DefaultBranch)},
		current:  DefaultBranch,
	}
}

// Current returns the branch store operations act on.
func (m *BranchManager) Current() *Branch { return m.branches[m.current] }

// Lookup returns the named branch.
func (m *BranchManager) Lookup(name string) (*Branch, bool) {
	b, ok := m.branches[name]
	return b, ok
}

// Names returns all branch names, sorted.
func (m *BranchManager) Names() []string {
	names := make([]string, 0, len(m.branches))
	for name := range m.branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create forks the current branch under name without switching to it.
func (m *BranchManager) Create(name string) Result {
	if _, exists := m.branches[name]; exists {
		return fail("Branch %s already exists.", name)
	}
	m.branches[name] = m.Current().fork(name)
	return succeed(nil, "Created branch %s.", name)
}

// Checkout makes name the current branch. File and commit state is untouched.
func (m *BranchManager) Checkout(name string) Result {
	if _, exists := m.branches[name]; !exists {
		return fail("Branch %s does not exist.", name)
	}
	m.current = name
	return succeed(nil, "Switched to branch %s.", name)
}

// Remove deletes a branch other than the current one.
func (m *BranchManager) Remove(name string) Result {
	if name == m.current {
		return fail("Cannot remove current branch.")
	}
	if _, exists := m.branches[name]; !exists {
		return fail("Branch %s does not exist.", name)
	}
	delete(m.branches, name)
	return succeed(nil, "Removed branch %s.", name)
}

// List renders the branch names one per line, the current one marked "* ".
func (m *BranchManager) List() Result {
	names := m.Names()
	lines := make([]string, len(names))
	for i, name := range names {
		if name == m.current {
			lines[i] = "* " + name
		} else {
			lines[i] = "  " + name
		}
	}
	return succeed(nil, "%s", strings.Join(lines, "\n"))
}
