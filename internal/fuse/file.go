package fuse

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// ContentFile is a read-only file whose bytes are produced on every access.
type ContentFile struct {
	fs.Inode
	path    string
	content func() ([]byte, bool)
}

var _ = (fs.NodeGetattrer)((*ContentFile)(nil))
var _ = (fs.NodeReader)((*ContentFile)(nil))
var _ = (fs.NodeOpener)((*ContentFile)(nil))

func (f *ContentFile) bytes() []byte {
	data, _ := f.content()
	return data
}

func (f *ContentFile) Getattr(ctx context.Context, fh fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = 0444
	out.Size = uint64(len(f.bytes()))
	out.Ino = stableIno(f.path)
	return fs.OK
}

func (f *ContentFile) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	return nil, fuse.FOPEN_DIRECT_IO, fs.OK
}

func (f *ContentFile) Read(ctx context.Context, fh fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	return fuse.ReadResultData(window(f.bytes(), dest, off)), fs.OK
}

// window returns the slice of data a read of len(dest) bytes at off sees.
func window(data, dest []byte, off int64) []byte {
	if off >= int64(len(data)) {
		return nil
	}
	end := off + int64(len(dest))
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return data[off:end]
}

// newFile creates a ContentFile inode under parent, or ENOENT if content is
// not currently available.
func newFile(ctx context.Context, parent *fs.Inode, path string, content func() ([]byte, bool)) (*fs.Inode, syscall.Errno) {
	if _, ok := content(); !ok {
		return nil, syscall.ENOENT
	}
	f := &ContentFile{path: path, content: content}
	return parent.NewInode(ctx, f, fs.StableAttr{
		Mode: syscall.S_IFREG,
		Ino:  stableIno(path),
	}), fs.OK
}
