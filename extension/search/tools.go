// tools.go implements the MCP tools of the search extension.

package search

import (
	"context"
	"fmt"

	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/glob"
	"github.com/jpl-au/llmfs/internal/grep"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/scan"
	"github.com/mark3labs/mcp-go/mcp"
)

func tools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("glob",
				mcp.WithDescription(`Fast file pattern matching tool that works with any codebase size. Supports glob patterns like "**/*.js" or "src/**/*.ts". Returns matching workspace-relative paths in lexical order.`),
				mcp.WithString("pattern", mcp.Required(), mcp.Description("The glob pattern to match files against")),
				mcp.WithString("path", mcp.Description("The directory to search in. If not specified, the workspace root is used.")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: globTool,
		},
		{
			Tool: mcp.NewTool("grep",
				mcp.WithDescription("Fast content search tool that works with any codebase size. Searches file contents using regular expressions (ripgrep syntax). Filter files by pattern with the include parameter. Returns matches grouped by file path with line numbers."),
				mcp.WithString("pattern", mcp.Required(), mcp.Description("The regex pattern to search for in file contents")),
				mcp.WithString("path", mcp.Description("The directory to search in. Defaults to the workspace root.")),
				mcp.WithString("include", mcp.Description(`File pattern to include in the search (e.g. "*.js", "*.{ts,tsx}")`)),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: grepTool,
		},
		{
			Tool: mcp.NewTool("search_file_content",
				mcp.WithDescription("Searches for a regex pattern in the content of files. Supports glob patterns for file inclusion. Returns matches with file path, line number, and line content."),
				mcp.WithString("pattern", mcp.Required(), mcp.Description("The regex pattern to search for in file contents")),
				mcp.WithString("path", mcp.Description("The directory to search in (defaults to the workspace root)")),
				mcp.WithString("include", mcp.Description(`Glob selecting files to search (e.g. "**/*.js"; default "**/*")`)),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: searchFileContent,
		},
	}
}

func globTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := extension.StringArg(req, "pattern", "")
	path := extension.StringArg(req, "path", "")

	paths, err := glob.Run(ctx, extCtx.Workspace(), glob.Options{Pattern: pattern, Path: path})

	log.Event("mcp:glob", "search").
		Author(extension.MCPAuthor).
		Path(path).
		Detail("pattern", pattern).
		Detail("count", len(paths)).
		Write(err)

	if err != nil {
		return extension.ErrorResult(fmt.Errorf("glob %q: %w", pattern, err))
	}
	return extension.JSONResult(paths)
}

func grepTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := extension.StringArg(req, "pattern", "")
	path := extension.StringArg(req, "path", "")
	include := extension.StringArg(req, "include", "")
	cfg := extCtx.Config()

	report, err := grep.Run(ctx, nil, extCtx.Workspace(), extCtx.Ripgrep(), grep.Options{
		Pattern: pattern,
		Path:    path,
		Include: include,
		Limit:   cfg.MaxMatches(),
		Timeout: cfg.SearchTimeout(),
	})

	log.Event("mcp:grep", "search").
		Author(extension.MCPAuthor).
		Path(path).
		Detail("pattern", pattern).
		Detail("include", include).
		Detail("count", report.Matches).
		Write(err)

	if err != nil {
		return extension.ErrorResult(err)
	}
	return mcp.NewToolResultText(report.Output), nil
}

func searchFileContent(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern := extension.StringArg(req, "pattern", "")
	path := extension.StringArg(req, "path", "")
	include := extension.StringArg(req, "include", "")
	cfg := extCtx.Config()

	matches, err := scan.Run(ctx, extCtx.Workspace(), scan.Options{
		Pattern:       pattern,
		Path:          path,
		Include:       include,
		MaxLineLength: cfg.MaxLineLength(),
		MaxMatches:    cfg.MaxMatches(),
	})

	log.Event("mcp:search_file_content", "search").
		Author(extension.MCPAuthor).
		Path(path).
		Detail("pattern", pattern).
		Detail("include", include).
		Detail("count", len(matches)).
		Write(err)

	if err != nil {
		return extension.ErrorResult(fmt.Errorf("search_file_content %q: %w", pattern, err))
	}
	return extension.JSONResult(matches)
}
