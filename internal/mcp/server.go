// Package mcp implements the Model Context Protocol server, exposing
// vgrep's search operations to LLMs. This lets AI assistants search a
// workspace's mounted stores and local files through a standardised
// protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpl-au/vgrep/internal/config"
	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/jpl-au/vgrep/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio. The mount table is built here
// rather than by the CLI layer so config problems surface as protocol
// errors the client can read, not as a process that never started.
func Serve() error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	table, err := buildTable()
	if err != nil {
		slog.Error("failed to build mount table", "error", err)
		return err
	}
	defer table.Close()

	h := &handlers{mounts: table}

	s := server.NewMCPServer(
		"vgrep",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	slog.Info("vgrep MCP server ready", "version", Version, "transport", "stdio", "mounts", len(table.Points()))

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// buildTable opens every configured store. A missing config yields an
// empty table: grep still works, purely locally.
func buildTable() (*mount.Table, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	var points []*mount.Point
	for _, m := range cfg.Mounts {
		st, err := store.Open(m.Store)
		if err != nil {
			return nil, fmt.Errorf("mount %q: %w", m.Prefix, err)
		}
		points = append(points, &mount.Point{Prefix: m.Prefix, Root: m.Root, Backend: st})
	}
	return mount.NewTable(points...)
}

// handlers provides MCP request handlers with access to the mount table.
type handlers struct {
	mounts *mount.Table
}

// registerResources adds URI-based resource access for direct document
// reading from mounted stores.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"vgrep://documents/{path}",
			"Document",
			mcp.WithTemplateDescription("Read a mounted document by workspace path"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readDocument,
	)
}

// registerTools exposes the search operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("vgrep_grep",
			mcp.WithDescription("Search mounted stores and local files with classic grep semantics. Returns matching lines as path:line text."),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Regex pattern (e.g. 'error|warn', 'TODO.*fix')")),
			mcp.WithString("path", mcp.Description("File or directory to search (default: requires a path; use recursive for trees)")),
			mcp.WithBoolean("ignore_case", mcp.Description("Case insensitive match")),
			mcp.WithBoolean("line_number", mcp.Description("Prefix matches with 1-based line numbers")),
			mcp.WithBoolean("invert", mcp.Description("Select non-matching lines")),
			mcp.WithBoolean("count", mcp.Description("Return match counts instead of lines")),
			mcp.WithBoolean("files_with_matches", mcp.Description("Return only matching file names")),
			mcp.WithBoolean("recursive", mcp.Description("Descend into directories")),
			mcp.WithBoolean("word", mcp.Description("Match whole words only")),
			mcp.WithBoolean("fixed", mcp.Description("Treat pattern as literal text")),
			mcp.WithBoolean("only_matching", mcp.Description("Return only the matched text")),
			mcp.WithNumber("max_count", mcp.Description("Stop after N matches per file")),
		),
		h.grepTool,
	)

	s.AddTool(
		mcp.NewTool("vgrep_rgrep",
			mcp.WithDescription("Search mounted stores directly through the substrate grep, no local fallback. Returns exactly what the store reports."),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("Pattern forwarded verbatim to the store")),
			mcp.WithString("path", mcp.Description("Workspace path under a mount (default: every mount)")),
			mcp.WithBoolean("line_number", mcp.Description("Include 1-based line numbers")),
		),
		h.rgrepTool,
	)
}
