package fuse

import "hash/fnv"

// stableIno maps a mount-relative path to an inode number. 0 and 1 are
// reserved by the kernel and go-fuse (root), so they are remapped.
func stableIno(path string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(path))
	if ino := h.Sum64(); ino > 1 {
		return ino
	}
	return 2
}
