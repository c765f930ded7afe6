// plan.go computes the execution plan for one invocation: the capability
// decision and the remote-or-local classification of every file argument.
//
// Both are computed exactly once, before any matching begins, so routing
// never branches inside the matching loops and a path cannot change
// substrate mid-invocation.

package grep

import (
	"github.com/jpl-au/vgrep/internal/mount"
)

type targetKind int

const (
	targetLocal targetKind = iota
	targetRemote
)

// Target is one classified file argument.
type Target struct {
	Arg  string // Argument as the user gave it
	Path string // Resolved workspace path
	Kind targetKind

	// Set for remote-eligible targets.
	Mount *mount.Point
	Rel   string // Mount-relative path, "" for the mount root
}

// Plan is the fixed routing decision for a whole invocation. With no file
// arguments the single input is stdin; otherwise Targets holds every
// argument in declaration order.
type Plan struct {
	Targets []Target
	Stdin   bool

	// Delegate is the capability decision: when false every target,
	// remote-eligible or not, is evaluated by the local matcher.
	Delegate bool
}

// Delegable is the capability gate. Flags that need per-match detail the
// substrate grep cannot report (inverted lines, matched substrings) force
// full local evaluation.
func Delegable(o Options) bool {
	return !o.InvertMatch && !o.OnlyMatching
}

// buildPlan resolves and classifies the invocation's inputs. An empty
// file list requires piped stdin content; its absence is a usage error.
func buildPlan(o Options, env Env) (Plan, error) {
	p := Plan{Delegate: Delegable(o)}

	if len(o.Files) == 0 {
		if env.Stdin == nil {
			return p, usageErr("no files and no stdin input")
		}
		p.Stdin = true
		return p, nil
	}

	for _, f := range o.Files {
		resolved := env.FS.Resolve(f)
		t := Target{Arg: f, Path: resolved, Kind: targetLocal}
		if env.Mounts != nil {
			if mp, rel, ok := env.Mounts.Find(resolved); ok {
				t.Kind = targetRemote
				t.Mount = mp
				t.Rel = rel
			}
		}
		p.Targets = append(p.Targets, t)
	}
	return p, nil
}
