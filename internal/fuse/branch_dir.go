package fuse

import (
	"context"
	"strconv"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// BranchDir represents one branch (e.g. branches/master/).
// Contains: HEAD, objects/, staged/, log/
type BranchDir struct {
	fs.Inode
	view   *View
	branch string
}

var _ = (fs.NodeLookuper)((*BranchDir)(nil))
var _ = (fs.NodeReaddirer)((*BranchDir)(nil))
var _ = (fs.NodeGetattrer)((*BranchDir)(nil))

func (d *BranchDir) path(name string) string {
	return "branches/" + d.branch + "/" + name
}

func (d *BranchDir) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0555
	out.Ino = stableIno("branches/" + d.branch)
	return fs.OK
}

func (d *BranchDir) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	entries := []fuse.DirEntry{
		{Name: "HEAD", Mode: syscall.S_IFREG, Ino: stableIno(d.path("HEAD"))},
		{Name: "objects", Mode: syscall.S_IFDIR, Ino: stableIno(d.path("objects"))},
		{Name: "staged", Mode: syscall.S_IFDIR, Ino: stableIno(d.path("staged"))},
		{Name: "log", Mode: syscall.S_IFDIR, Ino: stableIno(d.path("log"))},
	}
	return fs.NewListDirStream(entries), fs.OK
}

func (d *BranchDir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	switch name {
	case "HEAD":
		return newFile(ctx, d.EmbeddedInode(), d.path(name), func() ([]byte, bool) {
			return d.view.Head(d.branch)
		})

	case "objects", "staged":
		k := Committed
		if name == "staged" {
			k = Staged
		}
		child := d.NewInode(ctx, &ObjectsDir{view: d.view, branch: d.branch, kind: k}, fs.StableAttr{
			Mode: syscall.S_IFDIR,
			Ino:  stableIno(d.path(name)),
		})
		return child, fs.OK

	case "log":
		child := d.NewInode(ctx, &LogDir{view: d.view, branch: d.branch}, fs.StableAttr{
			Mode: syscall.S_IFDIR,
			Ino:  stableIno(d.path(name)),
		})
		return child, fs.OK

	default:
		return nil, syscall.ENOENT
	}
}

// ObjectsDir lists the committed or staged objects of a branch as files.
type ObjectsDir struct {
	fs.Inode
	view   *View
	branch string
	kind   Snapshot
}

var _ = (fs.NodeLookuper)((*ObjectsDir)(nil))
var _ = (fs.NodeReaddirer)((*ObjectsDir)(nil))
var _ = (fs.NodeGetattrer)((*ObjectsDir)(nil))

func (d *ObjectsDir) path(name string) string {
	return "branches/" + d.branch + "/" + d.kind.dirName() + "/" + name
}

func (d *ObjectsDir) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0555
	out.Ino = stableIno("branches/" + d.branch + "/" + d.kind.dirName())
	return fs.OK
}

func (d *ObjectsDir) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	names, ok := d.view.ObjectNames(d.branch, d.kind)
	if !ok {
		return nil, syscall.ENOENT
	}
	entries := make([]fuse.DirEntry, len(names))
	for i, name := range names {
		entries[i] = fuse.DirEntry{
			Name: name,
			Mode: syscall.S_IFREG,
			Ino:  stableIno(d.path(name)),
		}
	}
	return fs.NewListDirStream(entries), fs.OK
}

func (d *ObjectsDir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	return newFile(ctx, d.EmbeddedInode(), d.path(name), func() ([]byte, bool) {
		return d.view.Object(d.branch, d.kind, name)
	})
}

// LogDir exposes a branch's commits as files.
// Layout: log/0 (newest commit JSON), log/1, ...
type LogDir struct {
	fs.Inode
	view   *View
	branch string
}

var _ = (fs.NodeLookuper)((*LogDir)(nil))
var _ = (fs.NodeReaddirer)((*LogDir)(nil))
var _ = (fs.NodeGetattrer)((*LogDir)(nil))

func (d *LogDir) path(name string) string {
	return "branches/" + d.branch + "/log/" + name
}

func (d *LogDir) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0555
	out.Ino = stableIno("branches/" + d.branch + "/log")
	return fs.OK
}

func (d *LogDir) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	n, ok := d.view.LogLen(d.branch)
	if !ok {
		return nil, syscall.ENOENT
	}
	entries := make([]fuse.DirEntry, n)
	for i := range entries {
		name := strconv.Itoa(i)
		entries[i] = fuse.DirEntry{
			Name: name,
			Mode: syscall.S_IFREG,
			Ino:  stableIno(d.path(name)),
		}
	}
	return fs.NewListDirStream(entries), fs.OK
}

func (d *LogDir) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 || strconv.Itoa(idx) != name {
		return nil, syscall.ENOENT
	}
	return newFile(ctx, d.EmbeddedInode(), d.path(name), func() ([]byte, bool) {
		return d.view.LogEntry(d.branch, idx)
	})
}
