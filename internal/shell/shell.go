// Package shell runs commands inside the workspace.
//
// Commands run through the platform shell with the workspace root as their
// working directory. Because the shell itself can reach anywhere, commands
// that mention an absolute or home-relative path ("/", "~", or a drive
// letter such as "C:") are refused outright; relative paths resolve inside
// the workspace. This is a coarse filter, not a sandbox.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// DefaultTimeout bounds a command when no timeout is given.
const DefaultTimeout = 120 * time.Second

// maxOutput caps each captured stream.
const maxOutput = 1 << 20

var (
	ErrTimeout       = errors.New("command timed out")
	ErrCommandFailed = errors.New("command failed")
)

var driveLetter = regexp.MustCompile(`[A-Z]:`)

// Options configures a command run.
type Options struct {
	Command string        // Shell command line (required)
	Timeout time.Duration // 0 = DefaultTimeout
}

// Result is the captured outcome of a command.
type Result struct {
	Command  string `json:"command"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// Check rejects commands that reference paths outside the workspace.
func Check(command string) error {
	if strings.ContainsAny(command, "/~") || driveLetter.MatchString(command) {
		return fmt.Errorf("%w: command references an absolute path", workspace.ErrAccessDenied)
	}
	return nil
}

// Run executes opts.Command in the workspace root. A non-zero exit returns
// the captured Result together with an error wrapping ErrCommandFailed.
func Run(ctx context.Context, g *workspace.Guard, opts Options) (Result, error) {
	if err := validate.Required("command", opts.Command); err != nil {
		return Result{}, err
	}
	if err := Check(opts.Command); err != nil {
		return Result{}, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := shellCommand(ctx, opts.Command)
	cmd.Dir = g.Root()
	cmd.WaitDelay = time.Second

	var stdout, stderr capped
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	r := Result{
		Command:  opts.Command,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return r, fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, opts.Command)
		}
		return r, ctxErr
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return r, fmt.Errorf("%w: exit status %d: %s", ErrCommandFailed, exitErr.ExitCode(), strings.TrimSpace(r.Stderr))
		}
		return r, fmt.Errorf("%w: %w", ErrCommandFailed, err)
	}
	return r, nil
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}

// capped is a bytes.Buffer that silently drops writes past maxOutput.
type capped struct {
	buf       bytes.Buffer
	truncated bool
}

func (c *capped) Write(p []byte) (int, error) {
	if room := maxOutput - c.buf.Len(); room < len(p) {
		c.truncated = true
		if room > 0 {
			c.buf.Write(p[:room])
		}
		return len(p), nil
	}
	return c.buf.Write(p)
}

func (c *capped) String() string {
	if c.truncated {
		return c.buf.String() + "\n[output truncated]"
	}
	return c.buf.String()
}
