// resources.go implements MCP resources: workspace files by URI and the
// embedded guide.
//
// Design: Resource URIs follow llmfs://files/{path}. The path goes through
// the same workspace guard as the read_file tool, so a resource read can
// never reach outside the root either.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/guide"
	"github.com/jpl-au/llmfs/internal/cat"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	filePrefix = "llmfs://files/"
	guideURI   = "llmfs://guide"
)

// ErrInvalidURI indicates a malformed resource URI.
var ErrInvalidURI = errors.New("invalid URI")

func registerResources(s *server.MCPServer, extCtx extension.Context) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			filePrefix+"{+path}",
			"Workspace file",
			mcp.WithTemplateDescription("Read a file inside the workspace by relative path"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return readFile(ctx, extCtx, req.Params.URI)
		},
	)

	s.AddResource(
		mcp.NewResource(
			guideURI,
			"llmfs guide",
			mcp.WithResourceDescription("How to use the llmfs tools"),
			mcp.WithMIMEType("text/markdown"),
		),
		func(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			content, err := guide.Get("")
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "text/markdown", Text: content},
			}, nil
		},
	)
}

func readFile(ctx context.Context, extCtx extension.Context, uri string) ([]mcp.ResourceContents, error) {
	p, err := parseFileURI(uri)
	if err != nil {
		return nil, err
	}
	files, err := cat.RunMany(ctx, extCtx.Workspace(), []string{p}, extCtx.Config().MaxContent())
	log.Event("mcp:resource", "read").Author(extension.MCPAuthor).Path(p).Write(err)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "text/plain", Text: files[0].Content},
	}, nil
}

// parseFileURI extracts the workspace path from llmfs://files/{path}.
func parseFileURI(uri string) (string, error) {
	p, ok := strings.CutPrefix(uri, filePrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if p == "" {
		return "", fmt.Errorf("%w: empty path in %s", ErrInvalidURI, uri)
	}
	return p, nil
}
