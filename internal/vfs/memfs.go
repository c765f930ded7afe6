// memfs.go implements an in-memory FS for tests and embedded hosts.
//
// Separated from vfs.go to keep the capability contract and the OS
// implementation free of test-support concerns. MemFS is also used by the
// grep engine tests, so it lives here rather than in a _test.go file.

package vfs

import (
	"sort"
	"strings"
)

// MemFS is an in-memory FS built from a path -> content map. Directories
// exist implicitly wherever a file path has parent components.
type MemFS struct {
	files map[string]string
	// unreadable marks paths whose reads fail, for exercising the
	// skip-and-continue behaviour of directory walks.
	unreadable map[string]bool
}

var _ FS = (*MemFS)(nil)

// NewMemFS creates a MemFS from a map of slash-separated paths to content.
func NewMemFS(files map[string]string) *MemFS {
	m := &MemFS{files: map[string]string{}, unreadable: map[string]bool{}}
	for p, c := range files {
		m.files[clean(p)] = c
	}
	return m
}

// MarkUnreadable makes future reads of path fail.
func (m *MemFS) MarkUnreadable(path string) {
	m.unreadable[clean(path)] = true
}

// ReadFile implements FS.
func (m *MemFS) ReadFile(path string) (string, error) {
	path = clean(path)
	if m.unreadable[path] {
		return "", ErrNotFound
	}
	c, ok := m.files[path]
	if !ok {
		return "", ErrNotFound
	}
	return c, nil
}

// ReadDir implements FS.
func (m *MemFS) ReadDir(path string) ([]Entry, error) {
	path = clean(path)
	prefix := ""
	if path != "" && path != "." {
		prefix = path + "/"
	}

	children := map[string]bool{} // name -> isDir
	found := path == "" || path == "."
	for p := range m.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		found = true
		rest := p[len(prefix):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			children[rest[:i]] = true
		} else if rest != "" {
			if !children[rest] {
				children[rest] = false
			}
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	entries := make([]Entry, 0, len(children))
	for name, dir := range children {
		entries = append(entries, Entry{Name: name, Dir: dir})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Stat implements FS.
func (m *MemFS) Stat(path string) (Info, error) {
	path = clean(path)
	if c, ok := m.files[path]; ok {
		return Info{Dir: false, Size: int64(len(c))}, nil
	}
	prefix := ""
	if path != "" && path != "." {
		prefix = path + "/"
	}
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return Info{Dir: true}, nil
		}
	}
	if path == "" || path == "." {
		return Info{Dir: true}, nil
	}
	return Info{}, ErrNotFound
}

// Resolve implements FS.
func (m *MemFS) Resolve(path string) string {
	return clean(path)
}

func clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, "/")
	if p == "." {
		return ""
	}
	return p
}
