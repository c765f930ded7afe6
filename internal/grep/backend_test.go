package grep

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/jpl-au/vgrep/internal/remote"
)

// fakeBackend is an in-memory substrate keyed by native path. It records
// every operation so tests can assert which primitives a scenario used.
type fakeBackend struct {
	docs map[string]string

	grepCalls []string // patterns passed to Grep
	readCalls []string // paths passed to Read
	listCalls []string // paths passed to List

	grepErr error // forced Grep failure

	// extra hits appended to every Grep result, for exercising hit
	// re-validation against the local matcher.
	extraHits []remote.Match
}

func newFakeBackend(docs map[string]string) *fakeBackend {
	return &fakeBackend{docs: docs}
}

func (f *fakeBackend) Read(_ context.Context, path string) (string, error) {
	f.readCalls = append(f.readCalls, path)
	c, ok := f.docs[path]
	if !ok {
		return "", errors.New("not found: " + path)
	}
	return c, nil
}

func (f *fakeBackend) List(_ context.Context, path string) ([]remote.Entry, error) {
	f.listCalls = append(f.listCalls, path)
	files := map[string]bool{}
	dirs := map[string]bool{}
	for p := range f.docs {
		rest, ok := strings.CutPrefix(p, path+"/")
		if !ok {
			continue
		}
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			dirs[rest[:i]] = true
		} else {
			files[rest] = true
		}
	}
	var entries []remote.Entry
	for name := range files {
		entries = append(entries, remote.Entry{Name: name})
	}
	for name := range dirs {
		entries = append(entries, remote.Entry{Name: name, Dir: true})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *fakeBackend) Grep(_ context.Context, pattern, path string) ([]remote.Match, error) {
	f.grepCalls = append(f.grepCalls, pattern)
	if f.grepErr != nil {
		return nil, f.grepErr
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	var paths []string
	for p := range f.docs {
		if p == path || strings.HasPrefix(p, path+"/") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var hits []remote.Match
	for _, p := range paths {
		for i, line := range strings.Split(f.docs[p], "\n") {
			if re.MatchString(line) {
				hits = append(hits, remote.Match{Path: p, Line: i + 1, Text: line})
			}
		}
	}
	return append(hits, f.extraHits...), nil
}

func (f *fakeBackend) Close() error { return nil }
