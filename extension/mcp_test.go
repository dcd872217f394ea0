package extension

import (
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestArgs(t *testing.T) {
	req := request(map[string]any{
		"s":     "text",
		"b":     true,
		"n":     float64(7),
		"list":  []any{"a", 1, "b"},
		"wrong": "true",
	})

	assert.Equal(t, "text", StringArg(req, "s", "def"))
	assert.Equal(t, "def", StringArg(req, "missing", "def"))
	assert.True(t, BoolArg(req, "b", false))
	assert.False(t, BoolArg(req, "wrong", false))
	assert.Equal(t, 7, IntArg(req, "n", 0))
	assert.Equal(t, 3, IntArg(req, "s", 3))
	assert.Equal(t, []string{"a", "b"}, StringsArg(req, "list"))
	assert.Nil(t, StringsArg(req, "missing"))

	assert.True(t, HasArg(req, "s"))
	assert.False(t, HasArg(req, "missing"))

	var empty mcp.CallToolRequest
	assert.Equal(t, "d", StringArg(empty, "s", "d"))
}

func TestResults(t *testing.T) {
	res, err := JSONResult(map[string]int{"n": 1})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"n":1}`, res.Content[0].(mcp.TextContent).Text)

	res, err = ErrorResult(errors.New("boom"))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "boom", res.Content[0].(mcp.TextContent).Text)
}
