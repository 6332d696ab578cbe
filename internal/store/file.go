package store

// File is a named object. Value is opaque and never inspected.
type File struct {
	Name  string
	Value any
}

// files is an ordered snapshot with at most one File per name.
type files []File

func (fs files) index(name string) int {
	for i, f := range fs {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (fs files) find(name string) (File, bool) {
	if i := fs.index(name); i >= 0 {
		return fs[i], true
	}
	return File{}, false
}

// put replaces any entry with the same name and appends f at the end.
func (fs files) put(f File) files {
	return append(fs.without(f.Name), f)
}

func (fs files) without(name string) files {
	out := make(files, 0, len(fs))
	for _, f := range fs {
		if f.Name != name {
			out = append(out, f)
		}
	}
	return out
}

// clone returns an independent copy; appends to it never alias fs.
func (fs files) clone() files {
	out := make(files, len(fs))
	copy(out, fs)
	return out
}
