// tools.go implements the MCP tools of the fs extension.
//
// Each handler runs the same internal operation as its CLI command, so the
// workspace guard applies identically to both surfaces. Failures are
// returned as tool errors the LLM can read and act on.

package fs

import (
	"context"
	"fmt"

	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/cat"
	"github.com/jpl-au/llmfs/internal/edit"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/ls"
	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/write"
	"github.com/mark3labs/mcp-go/mcp"
)

func tools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("list_directory",
				mcp.WithDescription("Lists files and directories in a given workspace path. You can optionally provide an array of glob patterns to ignore with the ignore parameter."),
				mcp.WithString("path", mcp.Required(), mcp.Description("The directory to list, relative to the workspace root (\".\" for the root)")),
				mcp.WithArray("ignore", mcp.WithStringItems(), mcp.Description("List of glob patterns to ignore")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: listDirectory,
		},
		{
			Tool: mcp.NewTool("read_file",
				mcp.WithDescription("Reads a file from the workspace. By default, it reads up to 2000 lines starting from the beginning of the file. You can optionally specify a line offset and limit. Lines are returned numbered."),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("The path to the file to read")),
				mcp.WithNumber("offset", mcp.Description("The line number to start reading from (0-based)")),
				mcp.WithNumber("limit", mcp.Description("The number of lines to read (defaults to 2000)")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: readFile,
		},
		{
			Tool: mcp.NewTool("read_many_files",
				mcp.WithDescription("Reads multiple files from the workspace. Takes an array of file paths and returns an array of objects containing the file path and content for each file."),
				mcp.WithArray("file_paths", mcp.Required(), mcp.WithStringItems(), mcp.Description("Array of file paths to read")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: readManyFiles,
		},
		{
			Tool: mcp.NewTool("write_file",
				mcp.WithDescription("Writes content to a file. Creates the file (and any parent directories) if it does not exist, or overwrites it if it does."),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("The path to the file to write")),
				mcp.WithString("content", mcp.Required(), mcp.Description("The content to write to the file")),
				mcp.WithDestructiveHintAnnotation(true),
			),
			Handler: writeFile,
		},
		{
			Tool: mcp.NewTool("replace",
				mcp.WithDescription("Replaces text in a file. Performs exact string replacement. If old_string is not unique in the file, you must provide a more specific string or use replace_all."),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("The path to the file to modify")),
				mcp.WithString("old_string", mcp.Required(), mcp.Description("The text to replace")),
				mcp.WithString("new_string", mcp.Required(), mcp.Description("The text to replace it with")),
				mcp.WithBoolean("replace_all", mcp.Description("Replace all occurrences of old_string (default false)")),
				mcp.WithDestructiveHintAnnotation(true),
			),
			Handler: replaceText,
		},
	}
}

func listDirectory(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := extension.StringArg(req, "path", "")
	ignore := extension.StringsArg(req, "ignore")

	err := validate.Required("path", path)
	var result ls.Result
	if err == nil {
		result, err = ls.Run(ctx, nil, extCtx.Workspace(), ls.Options{Path: path, Ignore: ignore, Hidden: true})
	}

	log.Event("mcp:list_directory", "list").
		Author(extension.MCPAuthor).
		Path(path).
		Detail("count", len(result.Entries)).
		Write(err)

	if err != nil {
		return extension.ErrorResult(fmt.Errorf("list_directory %q: %w", path, err))
	}
	return extension.JSONResult(result.Names())
}

func readFile(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := extension.StringArg(req, "file_path", "")
	cfg := extCtx.Config()

	result, err := cat.Run(ctx, nil, extCtx.Workspace(), path, cat.Options{
		Offset:        extension.IntArg(req, "offset", 0),
		Limit:         extension.IntArg(req, "limit", cfg.ReadLimit()),
		MaxLineLength: cfg.MaxLineLength(),
	})

	log.Event("mcp:read_file", "read").
		Author(extension.MCPAuthor).
		Path(path).
		Detail("lines", result.Lines).
		Write(err)

	if err != nil {
		return extension.ErrorResult(fmt.Errorf("read_file %q: %w", path, err))
	}
	content := result.Content
	if result.Truncated {
		next := result.Start - 1 + result.Lines
		content += fmt.Sprintf("\n\n(File has %d lines. Use offset %d to read more.)", result.Total, next)
	}
	return mcp.NewToolResultText(content), nil
}

func readManyFiles(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := extension.StringsArg(req, "file_paths")

	files, err := cat.RunMany(ctx, extCtx.Workspace(), paths, extCtx.Config().MaxContent())

	log.Event("mcp:read_many_files", "read").
		Author(extension.MCPAuthor).
		Detail("paths", paths).
		Write(err)

	if err != nil {
		return extension.ErrorResult(fmt.Errorf("read_many_files: %w", err))
	}
	return extension.JSONResult(files)
}

func writeFile(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := extension.StringArg(req, "file_path", "")
	content := extension.StringArg(req, "content", "")

	var result write.Result
	var err error
	if !extension.HasArg(req, "content") {
		err = fmt.Errorf("%w: content is required", validate.ErrInvalidArgument)
	} else {
		result, err = write.Run(ctx, nil, extCtx.Workspace(), path, content, write.Options{
			MaxContent: extCtx.Config().MaxContent(),
		})
	}

	log.Event("mcp:write_file", "write").
		Author(extension.MCPAuthor).
		Path(path).
		Detail("bytes", len(content)).
		Write(err)

	if err != nil {
		return extension.ErrorResult(fmt.Errorf("write_file %q: %w", path, err))
	}
	verb := "Wrote"
	if result.Created {
		verb = "Created"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s %s (%d bytes)", verb, result.Path, result.Bytes)), nil
}

func replaceText(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := extension.StringArg(req, "file_path", "")

	var result edit.Result
	var err error
	if !extension.HasArg(req, "new_string") {
		err = fmt.Errorf("%w: new_string is required", validate.ErrInvalidArgument)
	} else {
		result, err = edit.Run(ctx, nil, extCtx.Workspace(), path, edit.Options{
			Old:        extension.StringArg(req, "old_string", ""),
			New:        extension.StringArg(req, "new_string", ""),
			ReplaceAll: extension.BoolArg(req, "replace_all", false),
		})
	}

	log.Event("mcp:replace", "edit").
		Author(extension.MCPAuthor).
		Path(path).
		Detail("replacements", result.Replacements).
		Write(err)

	if err != nil {
		return extension.ErrorResult(fmt.Errorf("replace in %q: %w", path, err))
	}
	return extension.JSONResult(result)
}
