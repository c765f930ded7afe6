// local.go implements the local matcher: line-by-line evaluation of
// files, directory trees and stdin through a Source.
//
// Failure policy is partial results over total failure: an unreadable
// file or an un-stat-able path is remembered as errored and skipped, and
// the rest of the target set still runs. A directory target without -r is
// likewise skipped rather than aborting the invocation.

package grep

import (
	"context"
	"sort"
	"strings"
)

// Record is one reportable hit. Created once when a line is selected,
// consumed once by the aggregator, never mutated. File is the workspace
// path, empty for stdin. Match carries the matched substring for -o
// records and is empty otherwise.
type Record struct {
	File  string
	Line  int // 1-based
	Text  string
	Match string
}

// collector accumulates records and errored paths across all targets of
// one invocation. Everything is buffered before formatting.
type collector struct {
	records []Record
	errored []string
}

func (c *collector) fail(path string) {
	c.errored = append(c.errored, path)
}

// localSearch evaluates one target through src. Directories require the
// recursive flag and are walked depth-first with children in sorted name
// order, keeping output deterministic within a run.
func (c *collector) localSearch(ctx context.Context, src Source, path string, o Options, m Matcher) {
	info, err := src.Stat(ctx, path)
	if err != nil {
		c.fail(path)
		return
	}
	if !info.Dir {
		c.scanFile(ctx, src, path, o, m)
		return
	}
	if !o.Recursive {
		c.fail(path)
		return
	}
	c.walkDir(ctx, src, path, o, m)
}

func (c *collector) walkDir(ctx context.Context, src Source, dir string, o Options, m Matcher) {
	entries, err := src.ReadDir(ctx, dir)
	if err != nil {
		c.fail(dir)
		return
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	for _, e := range entries {
		child := dir + "/" + e.Name
		if dir == "" {
			child = e.Name
		}
		if e.Dir {
			c.walkDir(ctx, src, child, o, m)
		} else {
			c.scanFile(ctx, src, child, o, m)
		}
	}
}

func (c *collector) scanFile(ctx context.Context, src Source, path string, o Options, m Matcher) {
	content, err := src.ReadFile(ctx, path)
	if err != nil {
		c.fail(path)
		return
	}
	c.scanContent(path, content, o, m)
}

// scanContent splits content into lines and selects records. A single
// trailing empty element from a terminating newline is dropped so a file
// ending in "\n" does not grow a phantom empty line.
func (c *collector) scanContent(file, content string, o Options, m Matcher) {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for i, line := range lines {
		if o.OnlyMatching {
			// -v -o selects non-matching lines, which by definition have
			// no matched text to print.
			if o.InvertMatch {
				continue
			}
			for _, sp := range m.FindAll(line) {
				c.records = append(c.records, Record{
					File:  file,
					Line:  i + 1,
					Text:  line,
					Match: line[sp.Start:sp.End],
				})
			}
			continue
		}

		if m.Match(line) != o.InvertMatch {
			c.records = append(c.records, Record{File: file, Line: i + 1, Text: line})
		}
	}
}
