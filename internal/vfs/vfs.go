// Package vfs provides the minimal filesystem capability the host shell
// grants to search commands: read a file, list a directory, stat a path,
// and resolve a relative path against the working directory.
//
// Commands depend on the FS interface rather than the os package so the
// same matching code runs against the real filesystem, an in-memory tree
// in tests, or whatever capability object a host interpreter supplies.
package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotFound indicates the requested path does not exist.
var ErrNotFound = errors.New("no such file or directory")

// Entry is one child of a listed directory.
type Entry struct {
	Name string
	Dir  bool
}

// Info describes a stat'd path.
type Info struct {
	Dir  bool
	Size int64
}

// FS is the capability object: the four primitives a host shell exposes.
type FS interface {
	// ReadFile returns the full content of the file at path.
	ReadFile(path string) (string, error)

	// ReadDir returns the children of path sorted by name. Sorted output
	// keeps walk order stable within one invocation, which -l and -c
	// depend on.
	ReadDir(path string) ([]Entry, error)

	// Stat reports whether path exists and whether it is a directory.
	Stat(path string) (Info, error)

	// Resolve canonicalises a possibly-relative path.
	Resolve(path string) string
}

// OS is the real-filesystem implementation of FS, rooted at the process
// working directory.
type OS struct{}

var _ FS = OS{}

// ReadFile implements FS.
func (OS) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(b), nil
}

// ReadDir implements FS.
func (OS) ReadDir(path string) ([]Entry, error) {
	des, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		entries = append(entries, Entry{Name: de.Name(), Dir: de.IsDir()})
	}
	// os.ReadDir already sorts, but the FS contract promises it.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Stat implements FS.
func (OS) Stat(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Info{}, ErrNotFound
		}
		return Info{}, err
	}
	return Info{Dir: fi.IsDir(), Size: fi.Size()}, nil
}

// Resolve implements FS. Paths are cleaned and converted to forward
// slashes so mount classification sees one canonical form.
func (OS) Resolve(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
