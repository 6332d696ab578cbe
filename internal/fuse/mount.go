package fuse

import (
	"github.com/hanwen/go-fuse/v2/fs"
	gofuse "github.com/hanwen/go-fuse/v2/fuse"
)

// MountFS mounts a read-only view of the store at mountpoint.
// Returns the server (call server.Wait() to block, server.Unmount() to stop).
func MountFS(mountpoint string, view *View, debug bool) (*gofuse.Server, error) {
	root := &RootNode{view: view}

	opts := &fs.Options{
		MountOptions: gofuse.MountOptions{
			FsName:        "objstore",
			Name:          "objstore",
			DisableXAttrs: true,
			Debug:         debug,
		},
	}

	server, err := fs.Mount(mountpoint, root, opts)
	if err != nil {
		return nil, err
	}
	return server, nil
}
