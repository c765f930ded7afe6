// remote.go implements the remote delegate: handing one eligible target
// to the substrate's grep operation and folding the results back into the
// invocation's record stream.
//
// The substrate receives only the bare remote-pattern string. Every hit
// it returns is re-validated against the local matcher before being kept;
// a hit that fails re-validation is silently discarded. This keeps output
// identical whichever substrate produced it, even when the substrate's
// regex dialect or case handling differs from ours.

package grep

import (
	"context"
)

// remoteSearch delegates one target. The returned error is the backend's
// own failure, verbatim: the caller decides whether it is fatal (sole
// target) or degrades to an errored file. Directory semantics mirror the
// local matcher: a subtree target without -r is skipped as errored, never
// delegated, because substrate grep is inherently recursive.
func (c *collector) remoteSearch(ctx context.Context, t Target, remotePattern string, o Options, m Matcher) error {
	src := mountSource{point: t.Mount}

	info, err := src.Stat(ctx, t.Path)
	if err != nil {
		c.fail(t.Path)
		return nil
	}
	if info.Dir && !o.Recursive {
		c.fail(t.Path)
		return nil
	}

	matches, err := t.Mount.Backend.Grep(ctx, remotePattern, t.Mount.Native(t.Rel))
	if err != nil {
		c.fail(t.Path)
		return err
	}

	for _, hit := range matches {
		path, ok := t.Mount.FromNative(hit.Path)
		if !ok {
			continue
		}
		if !m.Match(hit.Text) {
			continue
		}
		c.records = append(c.records, Record{File: path, Line: hit.Line, Text: hit.Text})
	}
	return nil
}
