// pattern.go compiles the OR-joined pattern set into the two artifacts
// the pipeline needs: a local Matcher for line-by-line evaluation and a
// bare remote-pattern string for substrate delegation.
//
// The substrate grep accepts only a pattern, no flags, so every flag that
// can be expressed as a string transform (-F escaping, -w word anchors)
// is applied to both artifacts. Case-insensitivity cannot: it is applied
// only to the local matcher, and every remote hit is re-validated against
// that matcher so a substrate with different case semantics never leaks
// wrong lines into output.

package grep

import (
	"fmt"
	"regexp"
	"strings"
)

// Span is one matched byte range within a line.
type Span struct {
	Start int
	End   int
}

// Matcher is the minimal matching interface the rest of the pipeline
// depends on. Keeping it this small means the regexp engine can be
// swapped without touching flag or aggregation logic.
type Matcher interface {
	// Match reports whether the line contains at least one hit.
	Match(line string) bool

	// FindAll returns every non-overlapping hit in the line, in order.
	FindAll(line string) []Span
}

// Compiled holds both artifacts produced from one invocation's patterns.
type Compiled struct {
	Matcher Matcher
	Remote  string // Bare pattern string forwarded to substrate grep
}

// PatternError reports a pattern that failed to compile, naming the
// offending pattern as the user wrote it.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compile builds the local matcher and remote-pattern string from the
// ordered, OR-combined patterns in o.
func Compile(o Options) (Compiled, error) {
	parts := make([]string, len(o.Patterns))
	for i, p := range o.Patterns {
		expr := p
		if o.FixedStrings {
			expr = regexp.QuoteMeta(expr)
		}
		// Compile each pattern individually first so a failure names the
		// pattern the user actually wrote, not the joined expression.
		if _, err := regexp.Compile(expr); err != nil {
			return Compiled{}, &PatternError{Pattern: p, Err: err}
		}
		parts[i] = expr
	}

	joined := parts[0]
	if len(parts) > 1 {
		joined = "(?:" + strings.Join(parts, ")|(?:") + ")"
	}
	if o.WordRegexp {
		joined = `\b(?:` + joined + `)\b`
	}

	localExpr := joined
	if o.IgnoreCase {
		localExpr = "(?i)" + localExpr
	}
	re, err := regexp.Compile(localExpr)
	if err != nil {
		return Compiled{}, &PatternError{Pattern: strings.Join(o.Patterns, "|"), Err: err}
	}

	return Compiled{Matcher: &regexMatcher{re: re}, Remote: joined}, nil
}

// regexMatcher adapts the standard regexp engine to Matcher.
type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) Match(line string) bool {
	return m.re.MatchString(line)
}

// FindAll scans iteratively rather than using FindAllStringIndex so the
// zero-length-match rule is explicit: when a hit is empty the cursor
// advances by one byte, otherwise scanning would never terminate.
func (m *regexMatcher) FindAll(line string) []Span {
	var spans []Span
	pos := 0
	for pos <= len(line) {
		loc := m.re.FindStringIndex(line[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		spans = append(spans, Span{Start: start, End: end})
		if end == start {
			pos = start + 1
		} else {
			pos = end
		}
	}
	return spans
}
