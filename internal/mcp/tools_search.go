// tools_search.go implements the MCP search tool handlers.
//
// Both tools reuse the CLI pipelines unchanged: grep builds an argv and
// runs the full search pipeline into buffers, rgrep forwards to the
// substrate. Tool results carry the same text a terminal user would see,
// so LLM output and CLI output never disagree.

package mcp

import (
	"bytes"
	"context"
	"strconv"

	"github.com/jpl-au/vgrep/internal/grep"
	"github.com/jpl-au/vgrep/internal/log"
	"github.com/jpl-au/vgrep/internal/rgrep"
	"github.com/jpl-au/vgrep/internal/vfs"
	"github.com/mark3labs/mcp-go/mcp"
)

// grepTool handles vgrep_grep tool calls.
func (h *handlers) grepTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}

	var argv []string
	for _, f := range []struct {
		flag  string
		param string
	}{
		{"-i", "ignore_case"},
		{"-n", "line_number"},
		{"-v", "invert"},
		{"-c", "count"},
		{"-l", "files_with_matches"},
		{"-r", "recursive"},
		{"-w", "word"},
		{"-F", "fixed"},
		{"-o", "only_matching"},
	} {
		if getBool(req, f.param, false) {
			argv = append(argv, f.flag)
		}
	}
	if n := getInt(req, "max_count", 0); n > 0 {
		argv = append(argv, "-m", strconv.Itoa(n))
	}
	argv = append(argv, "--", pattern)
	if path := getString(req, "path", ""); path != "" {
		argv = append(argv, path)
	}

	env := grep.Env{FS: vfs.OS{}, Mounts: h.mounts}
	var stdout, stderr bytes.Buffer
	code := grep.Run(ctx, &stdout, &stderr, env, argv)

	log.Event("mcp:grep", "search").Detail("pattern", pattern).Detail("exit", code).Write(nil)

	switch code {
	case grep.ExitError:
		return mcp.NewToolResultError(stderr.String()), nil
	case grep.ExitNoMatch:
		return mcp.NewToolResultText("no matches"), nil
	default:
		return mcp.NewToolResultText(stdout.String()), nil
	}
}

// rgrepTool handles vgrep_rgrep tool calls.
func (h *handlers) rgrepTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}

	var argv []string
	if getBool(req, "line_number", false) {
		argv = append(argv, "-n")
	}
	argv = append(argv, pattern)
	if path := getString(req, "path", ""); path != "" {
		argv = append(argv, path)
	}

	var stdout, stderr bytes.Buffer
	code := rgrep.Run(ctx, &stdout, &stderr, h.mounts, argv)

	log.Event("mcp:rgrep", "search").Detail("pattern", pattern).Detail("exit", code).Write(nil)

	switch code {
	case rgrep.ExitError:
		return mcp.NewToolResultError(stderr.String()), nil
	case rgrep.ExitNoMatch:
		return mcp.NewToolResultText("no matches"), nil
	default:
		return mcp.NewToolResultText(stdout.String()), nil
	}
}
