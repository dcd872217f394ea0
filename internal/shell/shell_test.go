package shell

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		command string
		ok      bool
	}{
		{"ls -la", true},
		{"cat src\\a.txt", true},
		{"echo hello", true},
		{"cat /etc/passwd", false},
		{"ls ~", false},
		{"type C:\\Windows\\win.ini", false},
		{"cd .. && ls", true},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			err := Check(tt.command)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, workspace.ErrAccessDenied)
			}
		})
	}
}

func newGuard(t *testing.T) *workspace.Guard {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests use POSIX shell syntax")
	}
	g, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	return g
}

func TestRun_RunsInWorkspace(t *testing.T) {
	g := newGuard(t)
	require.NoError(t, os.WriteFile(filepath.Join(g.Root(), "marker.txt"), []byte("here"), 0o644))

	r, err := Run(context.Background(), g, Options{Command: "cat marker.txt"})
	require.NoError(t, err)
	assert.Equal(t, "here", r.Stdout)
	assert.Zero(t, r.ExitCode)
}

func TestRun_NonZeroExit(t *testing.T) {
	g := newGuard(t)

	r, err := Run(context.Background(), g, Options{Command: "echo out; echo oops >&2; exit 3"})
	require.ErrorIs(t, err, ErrCommandFailed)
	assert.Equal(t, 3, r.ExitCode)
	assert.Equal(t, "out\n", r.Stdout)
	assert.Contains(t, err.Error(), "oops")
}

func TestRun_Timeout(t *testing.T) {
	g := newGuard(t)
	start := time.Now()
	_, err := Run(context.Background(), g, Options{Command: "exec sleep 5", Timeout: 100 * time.Millisecond})
	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRun_Rejections(t *testing.T) {
	g := newGuard(t)

	_, err := Run(context.Background(), g, Options{})
	assert.ErrorIs(t, err, validate.ErrInvalidArgument)

	_, err = Run(context.Background(), g, Options{Command: "touch /tmp/pwned"})
	assert.ErrorIs(t, err, workspace.ErrAccessDenied)
}

func TestCapped(t *testing.T) {
	var c capped
	_, _ = c.Write([]byte(strings.Repeat("x", maxOutput+10)))
	assert.True(t, strings.HasSuffix(c.String(), "[output truncated]"))
	assert.Equal(t, maxOutput, c.buf.Len())
}
