// resources.go implements MCP resource handlers for document access.
//
// Resources provide read-only access to mounted documents via URI,
// letting LLM clients load document content without using tools. URIs
// follow the pattern vgrep://documents/{workspace-path}; classification
// against the mount table mirrors the CLI's cat passthrough.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing document path in a resource URI.
	ErrEmptyPath = errors.New("empty document path")
)

// readDocument handles vgrep://documents/{path} resource requests.
func (h *handlers) readDocument(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI

	const prefix = "vgrep://documents/"
	if !strings.HasPrefix(uri, prefix) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	path := strings.TrimPrefix(uri, prefix)
	if path == "" {
		return nil, ErrEmptyPath
	}

	p, rel, ok := h.mounts.Find(path)
	if !ok {
		return nil, fmt.Errorf("%s: not under a mount", path)
	}
	content, err := p.Backend.Read(ctx, p.Native(rel))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     content,
		},
	}, nil
}
