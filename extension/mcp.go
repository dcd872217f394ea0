// mcp.go defines types for MCP tool registration by extensions, plus the
// argument helpers every tool handler uses.
//
// Design: Extraction is permissive. A missing or mistyped optional argument
// yields the default instead of a type error, because LLMs frequently omit
// optional parameters or send "true" where true was meant. Required
// arguments are checked by the operation itself (validate.Required), so the
// LLM gets the same message the CLI user would.

package extension

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler processes MCP tool requests.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

// MCPAuthor is recorded in the audit log for MCP tool calls.
const MCPAuthor = "mcp"

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// HasArg reports whether the argument was supplied at all.
func HasArg(req mcp.CallToolRequest, name string) bool {
	_, ok := args(req)[name]
	return ok
}

// StringArg returns a string argument or def.
func StringArg(req mcp.CallToolRequest, name, def string) string {
	if v, ok := args(req)[name].(string); ok {
		return v
	}
	return def
}

// BoolArg returns a boolean argument or def.
func BoolArg(req mcp.CallToolRequest, name string, def bool) bool {
	if v, ok := args(req)[name].(bool); ok {
		return v
	}
	return def
}

// IntArg returns an integer argument or def. JSON numbers decode as float64.
func IntArg(req mcp.CallToolRequest, name string, def int) int {
	switch v := args(req)[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// StringsArg returns a string array argument, skipping non-string elements.
// Returns nil when the argument is absent.
func StringsArg(req mcp.CallToolRequest, name string) []string {
	arr, ok := args(req)[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// JSONResult serialises v as indented JSON in a text result.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ErrorResult reports err to the LLM as a tool error rather than a protocol
// failure, so it can correct its arguments and retry.
func ErrorResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
