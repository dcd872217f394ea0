package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/config"
	"github.com/jpl-au/llmfs/internal/ripgrep"
	"github.com/jpl-au/llmfs/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T) (extension.Context, string) {
	t.Helper()
	root := t.TempDir()
	g, err := workspace.New(root)
	require.NoError(t, err)
	rg := ripgrep.New(ripgrep.WithCacheDir(filepath.Join(root, "bin")))
	return extension.NewContext(g, &config.Config{}, rg), root
}

// call sends one JSON-RPC request and returns the decoded result object.
func call(t *testing.T, s interface {
	HandleMessage(context.Context, json.RawMessage) mcp.JSONRPCMessage
}, id int, method string, params any) map[string]any {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	raw, err := json.Marshal(s.HandleMessage(context.Background(), msg))
	require.NoError(t, err)

	var resp struct {
		Result map[string]any `json:"result"`
		Error  map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.Nil(t, resp.Error, string(raw))
	return resp.Result
}

func initialize(t *testing.T, s interface {
	HandleMessage(context.Context, json.RawMessage) mcp.JSONRPCMessage
}) {
	t.Helper()
	call(t, s, 1, "initialize", map[string]any{
		"protocolVersion": mcp.LATEST_PROTOCOL_VERSION,
		"clientInfo":      map[string]any{"name": "test", "version": "0"},
		"capabilities":    map[string]any{},
	})
}

func TestNewServer_ToolsBoundToContext(t *testing.T) {
	extCtx, root := newContext(t)

	var seen extension.Context
	tools := []extension.MCPTool{{
		Tool: mcp.NewTool("echo_root", mcp.WithDescription("returns the root")),
		Handler: func(_ context.Context, c extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			seen = c
			return mcp.NewToolResultText(c.Workspace().Root()), nil
		},
	}}

	s := NewServer(extCtx, tools)
	initialize(t, s)

	list := call(t, s, 2, "tools/list", map[string]any{})
	raw, err := json.Marshal(list["tools"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"echo_root"`)

	res := call(t, s, 3, "tools/call", map[string]any{"name": "echo_root", "arguments": map[string]any{}})
	raw, err = json.Marshal(res["content"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), filepath.ToSlash(root)[1:])
	assert.Same(t, extCtx, seen)
}

func TestParseFileURI(t *testing.T) {
	p, err := parseFileURI("llmfs://files/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "src/main.go", p)

	_, err = parseFileURI("llmfs://files/")
	assert.ErrorIs(t, err, ErrInvalidURI)
	_, err = parseFileURI("file:///etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestReadFileResource(t *testing.T) {
	extCtx, root := newContext(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))

	contents, err := readFile(context.Background(), extCtx, "llmfs://files/a.txt")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "hello", contents[0].(mcp.TextResourceContents).Text)

	_, err = readFile(context.Background(), extCtx, "llmfs://files/../outside.txt")
	assert.ErrorIs(t, err, workspace.ErrAccessDenied)

	_, err = readFile(context.Background(), extCtx, "llmfs://files/missing.txt")
	assert.ErrorIs(t, err, workspace.ErrNotFound)
}
