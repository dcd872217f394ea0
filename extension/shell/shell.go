// Package shell provides command execution inside the workspace.
// Registers commands: run.
// Registers MCP tools: run_shell_command.
package shell

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/shell"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the shell extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "shell".
func (e *Extension) Name() string { return "shell" }

// Init stores the shared context.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the run command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newRunCmd()}
}

// MCPTools returns run_shell_command.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("run_shell_command",
				mcp.WithDescription("Executes a shell command in the workspace root and returns its stdout, stderr and exit code. Commands that reference absolute or home-relative paths are refused."),
				mcp.WithString("command", mcp.Required(), mcp.Description("The command line to execute")),
				mcp.WithNumber("timeout", mcp.Description("Optional timeout in milliseconds (default from shell.timeout)")),
				mcp.WithDestructiveHintAnnotation(true),
			),
			Handler: runShellCommand,
		},
	}
}

func (e *Extension) newRunCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "run <command>",
		Short: "Run a shell command in the workspace root",
		Long: `Run a command through the platform shell (sh -c, or cmd /C on Windows)
with the workspace root as the working directory.

  llmfs run "go vet"
  llmfs run "ls -la src" --timeout 10s

Commands mentioning absolute paths, ~ or drive letters are refused.
Stdout and stderr are passed through; the exit code is preserved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRun,
	}
	c.Flags().Duration(extension.FlagTimeout, 0, "Time budget (default shell.timeout)")
	return c
}

func (e *Extension) runRun(c *cobra.Command, args []string) error {
	command := strings.Join(args, " ")
	timeout, _ := c.Flags().GetDuration(extension.FlagTimeout)
	if timeout <= 0 {
		timeout = e.ctx.Config().ShellTimeout()
	}

	res, err := shell.Run(c.Context(), e.ctx.Workspace(), shell.Options{Command: command, Timeout: timeout})

	log.Event("shell:run", "run").
		Author(cmd.Author()).
		Detail("command", command).
		Detail("exit_code", res.ExitCode).
		Write(err)

	if cmd.JSON() {
		if err != nil && res.Command == "" {
			return cmd.PrintJSONError(err)
		}
		if perr := cmd.PrintJSON(res); perr != nil {
			return perr
		}
		return err
	}
	fmt.Fprint(cmd.Out(), res.Stdout)
	fmt.Fprint(c.ErrOrStderr(), res.Stderr)
	return err
}

func runShellCommand(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command := extension.StringArg(req, "command", "")
	timeout := extCtx.Config().ShellTimeout()
	if ms := extension.IntArg(req, "timeout", 0); ms > 0 {
		timeout = time.Duration(ms) * time.Millisecond
	}

	res, err := shell.Run(ctx, extCtx.Workspace(), shell.Options{Command: command, Timeout: timeout})

	log.Event("mcp:run_shell_command", "run").
		Author(extension.MCPAuthor).
		Detail("command", command).
		Detail("exit_code", res.ExitCode).
		Write(err)

	if err != nil {
		if res.Command == "" {
			return extension.ErrorResult(err)
		}
		return mcp.NewToolResultError(fmt.Sprintf("%v\nstdout:\n%s\nstderr:\n%s", err, res.Stdout, res.Stderr)), nil
	}
	return extension.JSONResult(res)
}
