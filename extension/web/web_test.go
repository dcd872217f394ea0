package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/config"
	"github.com/jpl-au/llmfs/internal/ripgrep"
	"github.com/jpl-au/llmfs/internal/workspace"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title>t</title><script>var x = 1;</script></head>
<body><h1>Title</h1><p>Hello <b>world</b></p></body></html>`

func newServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func callTool(t *testing.T, cfg *config.Config, args map[string]any) (string, bool) {
	t.Helper()
	g, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	extCtx := extension.NewContext(g, cfg, ripgrep.New())

	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := webFetch(context.Background(), extCtx, req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text, res.IsError
}

func TestWebFetch(t *testing.T) {
	srv := newServer(t, page)

	tests := []struct {
		format  string
		want    []string
		notWant []string
	}{
		{"", []string{"Title", "Hello world"}, []string{"<h1>", "var x"}},
		{"text", []string{"Title", "Hello world"}, []string{"<p>"}},
		{"markdown", []string{"# Title", "Hello **world**"}, []string{"var x"}},
		{"html", []string{"<h1>Title</h1>", "<script>"}, nil},
	}
	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			args := map[string]any{"url": srv.URL}
			if tt.format != "" {
				args["format"] = tt.format
			}
			text, isErr := callTool(t, &config.Config{}, args)
			require.False(t, isErr, text)
			for _, w := range tt.want {
				assert.Contains(t, text, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, text, w)
			}
		})
	}
}

func TestWebFetch_Truncated(t *testing.T) {
	srv := newServer(t, "<p>"+strings.Repeat("a", 500)+"</p>")
	limit := 100
	cfg := &config.Config{Web: config.Web{MaxContent: &limit}}

	text, isErr := callTool(t, cfg, map[string]any{"url": srv.URL})
	require.False(t, isErr, text)
	assert.True(t, strings.HasPrefix(text, strings.Repeat("a", 100)+"\n"))
	assert.Contains(t, text, "[Content truncated]")
}

func TestWebFetch_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		args map[string]any
		want string
	}{
		{map[string]any{}, "invalid argument"},
		{map[string]any{"url": "ftp://example.com/x"}, "invalid argument"},
		{map[string]any{"url": srv.URL, "format": "pdf"}, "invalid argument"},
		{map[string]any{"url": srv.URL}, "request failed"},
	}
	for _, tt := range tests {
		text, isErr := callTool(t, &config.Config{}, tt.args)
		assert.True(t, isErr)
		assert.Contains(t, text, tt.want)
	}
}
