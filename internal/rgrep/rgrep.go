// Package rgrep implements the reduced-protocol search command: it
// forwards a pattern directly to a mounted substrate's grep operation
// with no local fallback, no flag surface beyond -n, and no output
// shaping beyond the filename and optional line-number prefix.
//
// Where the full grep command re-validates remote hits and degrades on
// backend failure, rgrep reports exactly what the substrate reports and
// fails loudly. It exists for callers who want the raw substrate view.
package rgrep

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/jpl-au/vgrep/internal/path"
	"github.com/jpl-au/vgrep/internal/remote"
)

// Exit codes follow the grep convention.
const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitError   = 2
)

const usageText = "usage: rgrep [-n] pattern [path]"

// UsageError reports malformed arguments. Its message is the usage line.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return usageText
}

// Options holds the parsed arguments.
type Options struct {
	LineNumber bool   // -n: prefix hits with the 1-based line number
	Pattern    string // pattern to forward verbatim
	Path       string // optional workspace path; empty means every mount
}

// ParseArgs parses the reduced grammar: an optional -n, a mandatory
// pattern, an optional path, nothing else.
func ParseArgs(argv []string) (Options, error) {
	var o Options
	rest := argv
	if len(rest) > 0 && rest[0] == "-n" {
		o.LineNumber = true
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return o, &UsageError{Reason: "missing pattern"}
	}
	if strings.HasPrefix(rest[0], "-") && rest[0] != "-" {
		return o, &UsageError{Reason: "unknown flag " + rest[0]}
	}
	o.Pattern = rest[0]
	rest = rest[1:]
	if len(rest) > 0 {
		o.Path = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return o, &UsageError{Reason: "too many arguments"}
	}
	return o, nil
}

// Run executes the reduced-protocol search and returns the exit code.
func Run(ctx context.Context, stdout, stderr io.Writer, mounts *mount.Table, argv []string) int {
	o, err := ParseArgs(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}

	type call struct {
		point  *mount.Point
		native string
	}
	var calls []call
	if o.Path == "" {
		for _, p := range mounts.Points() {
			calls = append(calls, call{point: p, native: p.Root})
		}
		if len(calls) == 0 {
			fmt.Fprintln(stderr, "rgrep: no mounts configured")
			return ExitError
		}
	} else {
		p, rel, ok := mounts.Find(path.Clean(o.Path))
		if !ok {
			fmt.Fprintf(stderr, "rgrep: %s: not under a mount\n", o.Path)
			return ExitError
		}
		calls = append(calls, call{point: p, native: p.Native(rel)})
	}

	var b strings.Builder
	matched := false
	for _, c := range calls {
		hits, err := c.point.Backend.Grep(ctx, o.Pattern, c.native)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		for _, h := range hits {
			matched = true
			b.WriteString(renderHit(c.point, h, o.LineNumber))
			b.WriteByte('\n')
		}
	}

	if b.Len() > 0 {
		fmt.Fprint(stdout, b.String())
	}
	if !matched {
		return ExitNoMatch
	}
	return ExitMatch
}

// renderHit formats one substrate hit. Native paths translate back to
// workspace form; a path the substrate should not have returned is
// printed as-is rather than dropped.
func renderHit(p *mount.Point, h remote.Match, lineNumber bool) string {
	path := h.Path
	if ws, ok := p.FromNative(h.Path); ok {
		path = ws
	}
	if lineNumber {
		return path + ":" + strconv.Itoa(h.Line) + ":" + h.Text
	}
	return path + ":" + h.Text
}
