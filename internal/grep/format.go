// format.go implements the aggregator: per-file max-count truncation,
// output-mode selection and final rendering.
//
// Exactly one output mode applies per invocation, chosen by fixed
// priority: quiet beats -l beats -L beats -c beats normal line output.
// Non-empty output always ends with exactly one trailing newline; empty
// results render the empty string.

package grep

import (
	"strconv"
	"strings"
)

// formatResult renders the buffered records and returns the output text
// with the invocation's exit code: 0 for matches found, 1 for none.
func formatResult(o Options, records []Record) (string, int) {
	multiFile := len(o.Files) > 1 || o.Recursive || distinctFiles(records) > 1
	records = truncatePerFile(records, o.MaxCount)

	switch {
	case o.Quiet:
		if len(records) > 0 {
			return "", 0
		}
		return "", 1

	case o.FilesWithMatches:
		return renderFiles(records)

	case o.FilesWithoutMatch:
		// With only match records available, a truly non-matching file
		// cannot be named; the mode degrades to an exit code.
		if len(records) > 0 {
			return "", 1
		}
		return "", 0

	case o.Count:
		return renderCounts(o, records, multiFile)

	default:
		return renderLines(o, records, multiFile)
	}
}

// truncatePerFile keeps the first max records per distinct file, in
// encounter order. Zero means unlimited.
func truncatePerFile(records []Record, max int) []Record {
	if max == 0 {
		return records
	}
	seen := map[string]int{}
	kept := records[:0:0]
	for _, r := range records {
		if seen[r.File] >= max {
			continue
		}
		seen[r.File]++
		kept = append(kept, r)
	}
	return kept
}

func distinctFiles(records []Record) int {
	seen := map[string]bool{}
	for _, r := range records {
		seen[r.File] = true
	}
	return len(seen)
}

// stdinLabel names the stdin pseudo-file in modes that must print a file
// name, matching classic grep.
const stdinLabel = "(standard input)"

func renderFiles(records []Record) (string, int) {
	if len(records) == 0 {
		return "", 1
	}
	var b strings.Builder
	seen := map[string]bool{}
	for _, r := range records {
		if seen[r.File] {
			continue
		}
		seen[r.File] = true
		name := r.File
		if name == "" {
			name = stdinLabel
		}
		b.WriteString(name)
		b.WriteByte('\n')
	}
	return b.String(), 0
}

func renderCounts(o Options, records []Record, multiFile bool) (string, int) {
	if len(records) == 0 {
		return "0\n", 1
	}

	counts := map[string]int{}
	var order []string
	for _, r := range records {
		if _, ok := counts[r.File]; !ok {
			order = append(order, r.File)
		}
		counts[r.File]++
	}

	var b strings.Builder
	for _, file := range order {
		if multiFile && !o.NoFilename && file != "" {
			b.WriteString(file)
			b.WriteByte(':')
		}
		b.WriteString(strconv.Itoa(counts[file]))
		b.WriteByte('\n')
	}
	return b.String(), 0
}

func renderLines(o Options, records []Record, multiFile bool) (string, int) {
	if len(records) == 0 {
		return "", 1
	}
	var b strings.Builder
	for _, r := range records {
		if multiFile && !o.NoFilename && r.File != "" {
			b.WriteString(r.File)
			b.WriteByte(':')
		}
		if o.LineNumber {
			b.WriteString(strconv.Itoa(r.Line))
			b.WriteByte(':')
		}
		if o.OnlyMatching {
			b.WriteString(r.Match)
		} else {
			b.WriteString(r.Text)
		}
		b.WriteByte('\n')
	}
	return b.String(), 0
}

