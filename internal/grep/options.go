// options.go implements the grep flag parser.
//
// Separated from grep.go to isolate argv scanning from the matching
// pipeline. The parser is hand-rolled rather than built on pflag because
// classic grep argv semantics cannot be expressed there: combined short
// flags (-rn), inline values (-m3), the "--" separator after which the
// next token is unconditionally the pattern, and the permissive rule that
// once a pattern is claimed an unrecognised dash-led token is a file path
// (real grep accepts dash-led filenames this way).

package grep

import (
	"strconv"
	"strings"
)

// usageText is the terminal usage line. Usage failures write exactly this
// to stderr and exit 2.
const usageText = "usage: grep [-ivclLnrEFwohq] [-e pattern] [-m max] pattern [file ...]"

// UsageError indicates argv could not be parsed into a valid invocation.
type UsageError struct {
	Reason string // What went wrong, for diagnostics
}

func (e *UsageError) Error() string { return usageText }

func usageErr(reason string) error { return &UsageError{Reason: reason} }

// Options is the structured form of a grep invocation. Exactly one
// pattern slot is claimed before any file argument: either the first
// positional token, the first token after "--", or any -e value.
type Options struct {
	IgnoreCase        bool // -i: case-insensitive match
	LineNumber        bool // -n: prefix 1-based line number
	InvertMatch       bool // -v: select non-matching lines
	Count             bool // -c: print counts instead of lines
	FilesWithMatches  bool // -l: print only matching file names
	FilesWithoutMatch bool // -L: print only non-matching file names
	Recursive         bool // -r/-R: descend into directories
	ExtendedRegexp    bool // -E: accepted; the matcher syntax already covers ERE
	FixedStrings      bool // -F: treat patterns as literal text
	WordRegexp        bool // -w: match whole words only
	OnlyMatching      bool // -o: print only the matched text
	NoFilename        bool // -h: suppress filename prefix
	Quiet             bool // -q: no output, exit code only

	// MaxCount stops reporting after N matches per file. 0 is unlimited.
	MaxCount int

	Patterns []string // Ordered, OR-combined
	Files    []string // Ordered file arguments
}

// ParseArgs converts raw argv (after the command name) into Options.
// Unknown flags before a pattern is claimed, missing flag values, and a
// missing pattern are hard usage errors.
func ParseArgs(argv []string) (Options, error) {
	var o Options
	claimed := false
	afterSep := false

	for i := 0; i < len(argv); i++ {
		tok := argv[i]

		if afterSep {
			// Every token after "--" is positional; the first one is the
			// pattern even if it looks like a flag.
			if !claimed {
				o.Patterns = append(o.Patterns, tok)
				claimed = true
			} else {
				o.Files = append(o.Files, tok)
			}
			continue
		}

		if tok == "--" {
			afterSep = true
			continue
		}

		if len(tok) > 1 && tok[0] == '-' {
			if tok[1] == '-' {
				if err := o.parseLong(tok, argv, &i, &claimed); err != nil {
					return o, err
				}
			} else {
				if err := o.parseShort(tok, argv, &i, &claimed); err != nil {
					return o, err
				}
			}
			continue
		}

		// Positional token, including a lone "-".
		if !claimed {
			o.Patterns = append(o.Patterns, tok)
			claimed = true
		} else {
			o.Files = append(o.Files, tok)
		}
	}

	if len(o.Patterns) == 0 {
		return o, usageErr("no pattern")
	}
	return o, nil
}

// parseLong handles one --flag token. i advances when the flag consumes
// the next token as its value.
func (o *Options) parseLong(tok string, argv []string, i *int, claimed *bool) error {
	name, val, hasVal := strings.Cut(tok[2:], "=")

	if name == "max-count" {
		raw := val
		if !hasVal {
			*i++
			if *i >= len(argv) {
				return usageErr("--max-count requires a value")
			}
			raw = argv[*i]
		}
		return o.setMaxCount(raw)
	}

	if !hasVal {
		switch name {
		case "ignore-case":
			o.IgnoreCase = true
			return nil
		case "line-number":
			o.LineNumber = true
			return nil
		case "invert-match":
			o.InvertMatch = true
			return nil
		case "count":
			o.Count = true
			return nil
		case "files-with-matches":
			o.FilesWithMatches = true
			return nil
		case "files-without-match":
			o.FilesWithoutMatch = true
			return nil
		case "recursive":
			o.Recursive = true
			return nil
		case "extended-regexp":
			o.ExtendedRegexp = true
			return nil
		case "fixed-strings":
			o.FixedStrings = true
			return nil
		case "word-regexp":
			o.WordRegexp = true
			return nil
		case "only-matching":
			o.OnlyMatching = true
			return nil
		case "no-filename":
			o.NoFilename = true
			return nil
		case "quiet", "silent":
			o.Quiet = true
			return nil
		}
	}

	// Unrecognised long flag: a file path once the pattern is claimed,
	// a hard error before that.
	if *claimed {
		o.Files = append(o.Files, tok)
		return nil
	}
	return usageErr("unknown flag " + tok)
}

// parseShort handles one short-flag cluster like -rn, -m3 or -e PATTERN.
// The cluster is validated before any flag is applied: a dash-led token
// with an unrecognised character is either a file path (pattern already
// claimed) or a usage error, and must not half-apply its known flags.
func (o *Options) parseShort(tok string, argv []string, i *int, claimed *bool) error {
	if bad, ok := invalidShort(tok); ok {
		if *claimed {
			o.Files = append(o.Files, tok)
			return nil
		}
		return usageErr("unknown flag -" + string(bad))
	}

	for j := 1; j < len(tok); j++ {
		switch tok[j] {
		case 'i':
			o.IgnoreCase = true
		case 'n':
			o.LineNumber = true
		case 'v':
			o.InvertMatch = true
		case 'c':
			o.Count = true
		case 'l':
			o.FilesWithMatches = true
		case 'L':
			o.FilesWithoutMatch = true
		case 'r', 'R':
			o.Recursive = true
		case 'E':
			o.ExtendedRegexp = true
		case 'F':
			o.FixedStrings = true
		case 'w':
			o.WordRegexp = true
		case 'o':
			o.OnlyMatching = true
		case 'h':
			o.NoFilename = true
		case 'q':
			o.Quiet = true
		case 'e':
			// Value is the rest of the cluster, or the next token.
			rest := tok[j+1:]
			if rest == "" {
				*i++
				if *i >= len(argv) {
					return usageErr("-e requires a pattern")
				}
				rest = argv[*i]
			}
			o.Patterns = append(o.Patterns, rest)
			*claimed = true
			return nil
		case 'm':
			rest := tok[j+1:]
			if rest == "" {
				*i++
				if *i >= len(argv) {
					return usageErr("-m requires a value")
				}
				rest = argv[*i]
			}
			return o.setMaxCount(rest)
		}
	}
	return nil
}

// invalidShort reports the first unrecognised character in a short-flag
// cluster. Characters after 'e' or 'm' are that flag's inline value, not
// flags themselves.
func invalidShort(tok string) (byte, bool) {
	for j := 1; j < len(tok); j++ {
		switch tok[j] {
		case 'i', 'n', 'v', 'c', 'l', 'L', 'r', 'R', 'E', 'F', 'w', 'o', 'h', 'q':
		case 'e', 'm':
			return 0, false
		default:
			return tok[j], true
		}
	}
	return 0, false
}

func (o *Options) setMaxCount(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return usageErr("invalid max-count " + strconv.Quote(raw))
	}
	o.MaxCount = n
	return nil
}
