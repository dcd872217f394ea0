// Package mcp implements the Model Context Protocol server that exposes the
// llmfs tools to LLMs over stdio.
//
// Tools are contributed by extensions (extension.Tools); this package only
// binds them to the shared extension.Context and adds read-only resources.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/llmfs/extension"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// NewServer builds an MCP server exposing tools bound to extCtx.
func NewServer(extCtx extension.Context, tools []extension.MCPTool) *server.MCPServer {
	s := server.NewMCPServer(
		"llmfs",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	for _, t := range tools {
		h := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return h(ctx, extCtx, req)
		})
	}

	registerResources(s, extCtx)
	return s
}

// Serve runs the server over stdio until the client disconnects or the
// process is signalled. Diagnostics go to stderr; stdout carries JSON-RPC.
func Serve(extCtx extension.Context, tools []extension.MCPTool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := NewServer(extCtx, tools)
	slog.Info("llmfs MCP server ready",
		"version", Version,
		"transport", "stdio",
		"root", extCtx.Workspace().Root(),
		"tools", len(tools))

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}
