// Package grep implements the unified text-search command: the classic
// grep flag surface evaluated over two substrates at once.
//
// File arguments under a mount point are backed by an opaque storage
// substrate exposing only coarse read/list/grep operations; everything
// else is the host filesystem. Each invocation parses its own argv,
// compiles the pattern once, classifies every path once, routes each
// target to the remote delegate or the local matcher, and renders one
// merged result. Output is identical regardless of which substrate a
// path lives on.
//
// The pipeline is pure functions over an immutable Options value threaded
// through an explicit Env; there is no package-level state, so concurrent
// invocations share nothing.
package grep

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/jpl-au/vgrep/internal/vfs"
)

// Exit codes follow grep convention: matches, no matches, failure.
const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitError   = 2
)

// Env is the capability set the host grants one invocation: a filesystem,
// piped stdin content (nil when the host attached a terminal), and the
// mount table for substrate-backed subtrees.
type Env struct {
	FS     vfs.FS
	Stdin  io.Reader
	Mounts *mount.Table
}

// Run executes one grep invocation. Matches go to stdout, error text to
// stderr, never both. The returned exit code is 0 when at least one line
// was selected, 1 when none was, 2 on usage or fatal runtime errors.
//
// Work runs sequentially in declaration order, depth-first within
// directories. All records are buffered before formatting; feasible
// corpus size is bounded by memory in exchange for a simple one-pass
// aggregation model.
func Run(ctx context.Context, stdout, stderr io.Writer, env Env, argv []string) int {
	o, err := ParseArgs(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}

	compiled, err := Compile(o)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}

	plan, err := buildPlan(o, env)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitError
	}

	c := &collector{}
	if plan.Stdin {
		content, err := io.ReadAll(env.Stdin)
		if err != nil {
			fmt.Fprintf(stderr, "reading stdin: %v\n", err)
			return ExitError
		}
		c.scanContent("", string(content), o, compiled.Matcher)
	} else {
		for _, t := range plan.Targets {
			if t.Kind == targetRemote && plan.Delegate {
				if err := c.remoteSearch(ctx, t, compiled.Remote, o, compiled.Matcher); err != nil {
					if len(plan.Targets) == 1 {
						// Sole target: surface the backend failure verbatim.
						fmt.Fprintln(stderr, err)
						return ExitError
					}
					// Otherwise degrade to partial results from the rest.
				}
				continue
			}
			c.localSearch(ctx, sourceFor(t, env), t.Path, o, compiled.Matcher)
		}
	}

	out, code := formatResult(o, c.records)
	if out != "" {
		io.WriteString(stdout, out)
	}
	return code
}
