// tools_util.go provides helper functions for MCP tool parameter
// extraction.
//
// Extraction is permissive (return the default on error) rather than
// strictly validated because LLMs frequently omit optional parameters or
// provide them in unexpected formats; sensible defaults keep the tool
// usable rather than failing with type errors the LLM may struggle to
// interpret.

package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// getString extracts a string parameter, returning the provided default
// if the parameter is missing or not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the raw argument map. JSON
// booleans decode as Go bool values, so a type assertion suffices.
func getBool(req mcp.CallToolRequest, name string, def bool) bool {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers decode as float64,
// so assert to float64 first and convert.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}
