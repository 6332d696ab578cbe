package fuse

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// RootNode is the mountpoint directory. Contains "BRANCHES" and "branches/".
type RootNode struct {
	fs.Inode
	view *View
}

var _ = (fs.NodeOnAdder)((*RootNode)(nil))
var _ = (fs.NodeGetattrer)((*RootNode)(nil))

func (r *RootNode) OnAdd(ctx context.Context) {
	list := &ContentFile{path: "BRANCHES", content: func() ([]byte, bool) {
		return r.view.BranchList(), true
	}}
	listInode := r.NewPersistentInode(ctx, list, fs.StableAttr{
		Mode: syscall.S_IFREG,
		Ino:  stableIno("BRANCHES"),
	})
	r.AddChild("BRANCHES", listInode, true)

	branches := &BranchesDir{view: r.view}
	branchesInode := r.NewPersistentInode(ctx, branches, fs.StableAttr{
		Mode: syscall.S_IFDIR,
		Ino:  stableIno("branches"),
	})
	r.AddChild("branches", branchesInode, true)
}

func (r *RootNode) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0555
	out.Ino = stableIno("/")
	return fs.OK
}

// BranchesDir lists one directory per branch.
type BranchesDir struct {
	fs.Inode
	view *View
}

var _ = (fs.NodeLookuper)((*BranchesDir)(nil))
var _ = (fs.NodeReaddirer)((*BranchesDir)(nil))
var _ = (fs.NodeGetattrer)((*BranchesDir)(nil))

func (d *BranchesDir) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0555
	out.Ino = stableIno("branches")
	return fs.OK
}

func (d *BranchesDir) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	names := d.view.BranchNames()
	entries := make([]fuse.DirEntry, len(names))
	for i, name := range names {
		entries[i] = fuse.DirEntry{
			Name: name,
			Mode: syscall.S_IFDIR,
			Ino:  stableIno("branches/" + name),
		}
	}
	return fs.NewListDirStream(entries), fs.OK
}

func (d *BranchesDir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	if !d.view.HasBranch(name) {
		return nil, syscall.ENOENT
	}
	child := d.NewInode(ctx, &BranchDir{view: d.view, branch: name}, fs.StableAttr{
		Mode: syscall.S_IFDIR,
		Ino:  stableIno("branches/" + name),
	})
	return child, fs.OK
}
