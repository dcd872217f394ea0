// Package web provides URL retrieval for the LLM.
// Registers commands: fetch.
// Registers MCP tools: web_fetch.
//
// Design: fetching is the one operation that reaches outside the workspace,
// so it is read-only and never writes the response to disk.
package web

import (
	"context"
	"fmt"
	"time"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/webfetch"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the web extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "web".
func (e *Extension) Name() string { return "web" }

// Init stores the shared context.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the fetch command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newFetchCmd()}
}

// MCPTools returns web_fetch.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("web_fetch",
				mcp.WithDescription("Fetches content from a URL and returns it as text, markdown or html. GitHub blob URLs are fetched from raw.githubusercontent.com. Long content is truncated."),
				mcp.WithString("url", mcp.Required(), mcp.Description("The http or https URL to fetch")),
				mcp.WithString("format", mcp.Enum("text", "markdown", "html"), mcp.Description("Format of the returned content (default text)")),
				mcp.WithNumber("timeout", mcp.Description("Optional timeout in milliseconds (default from web.timeout)")),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: webFetch,
		},
	}
}

func (e *Extension) newFetchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a URL as text, markdown or html",
		Long: `Fetch a web page and print it converted for reading.

  llmfs fetch https://example.com
  llmfs fetch https://example.com --format markdown
  llmfs fetch https://github.com/owner/repo/blob/main/README.md

Formats: text (default, tags stripped), markdown, html (unchanged).`,
		Args: cobra.ExactArgs(1),
		RunE: e.runFetch,
	}
	c.Flags().StringP(extension.FlagFormat, "f", string(webfetch.FormatText), "Output format: text, markdown, html")
	c.Flags().Duration(extension.FlagTimeout, 0, "Request timeout (default web.timeout)")
	return c
}

func (e *Extension) runFetch(c *cobra.Command, args []string) error {
	format, _ := c.Flags().GetString(extension.FlagFormat)
	timeout, _ := c.Flags().GetDuration(extension.FlagTimeout)
	cfg := e.ctx.Config()
	if timeout <= 0 {
		timeout = cfg.WebTimeout()
	}

	res, err := webfetch.Fetch(c.Context(), webfetch.Options{
		URL:        args[0],
		Format:     webfetch.Format(format),
		Timeout:    timeout,
		MaxContent: cfg.WebMaxContent(),
	})

	log.Event("web:fetch", "fetch").
		Author(cmd.Author()).
		Detail("url", args[0]).
		Detail("format", format).
		Detail("status", res.Status).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	fmt.Fprintln(cmd.Out(), res.Content)
	return nil
}

func webFetch(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := extension.StringArg(req, "url", "")
	format := extension.StringArg(req, "format", string(webfetch.FormatText))
	cfg := extCtx.Config()
	timeout := cfg.WebTimeout()
	if ms := extension.IntArg(req, "timeout", 0); ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}

	res, err := webfetch.Fetch(ctx, webfetch.Options{
		URL:        url,
		Format:     webfetch.Format(format),
		Timeout:    timeout,
		MaxContent: cfg.WebMaxContent(),
	})

	log.Event("mcp:web_fetch", "fetch").
		Author(extension.MCPAuthor).
		Detail("url", url).
		Detail("format", format).
		Detail("status", res.Status).
		Write(err)

	if err != nil {
		return extension.ErrorResult(err)
	}
	if res.Truncated {
		return mcp.NewToolResultText(res.Content + "\n\n[Content truncated]"), nil
	}
	return mcp.NewToolResultText(res.Content), nil
}
