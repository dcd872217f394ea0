package grep

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jpl-au/llmfs/internal/ripgrep"
	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver struct {
	bin   ripgrep.Binary
	err   error
	calls int
}

func (r *staticResolver) Resolve(context.Context) (ripgrep.Binary, error) {
	r.calls++
	return r.bin, r.err
}

func setupWorkspace(t *testing.T) *workspace.Guard {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.ts"), []byte("export const a = 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "b.js"), []byte("export const b = 2\n"), 0o644))
	g, err := workspace.New(root)
	require.NoError(t, err)
	return g
}

func TestRun_RejectsOutsideDirBeforeResolving(t *testing.T) {
	g := setupWorkspace(t)
	r := &staticResolver{}

	_, err := Run(context.Background(), nil, g, r, Options{Pattern: "x", Path: "../"})
	require.ErrorIs(t, err, workspace.ErrAccessDenied)
	assert.Zero(t, r.calls)
}

func TestRun_Validation(t *testing.T) {
	g := setupWorkspace(t)
	r := &staticResolver{}

	_, err := Run(context.Background(), nil, g, r, Options{})
	assert.ErrorIs(t, err, validate.ErrInvalidArgument)

	_, err = Run(context.Background(), nil, g, r, Options{Pattern: "x", Path: "src/a.ts"})
	assert.ErrorIs(t, err, workspace.ErrNotADirectory)

	_, err = Run(context.Background(), nil, g, r, Options{Pattern: "x", Path: "missing"})
	assert.ErrorIs(t, err, workspace.ErrNotFound)
	assert.Zero(t, r.calls)
}

func TestRun_ProvisionErrorPropagates(t *testing.T) {
	g := setupWorkspace(t)
	r := &staticResolver{err: ripgrep.ErrUnsupportedPlatform}
	_, err := Run(context.Background(), nil, g, r, Options{Pattern: "x"})
	assert.True(t, errors.Is(err, ripgrep.ErrUnsupportedPlatform))
}

func TestRun_RewritesPathsToWorkspace(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake rg scripts need a POSIX shell")
	}
	g := setupWorkspace(t)
	script := filepath.Join(t.TempDir(), "rg")
	body := `#!/bin/sh
printf '%s\n' '{"type":"match","data":{"path":{"text":"a.ts"},"lines":{"text":"export const a = 1\n"},"line_number":1,"submatches":[]}}'
`
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	r := &staticResolver{bin: ripgrep.Binary{Path: script}}

	var buf bytes.Buffer
	report, err := Run(context.Background(), &buf, g, r, Options{Pattern: "export", Path: "src"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Matches)
	require.Len(t, report.Hits, 1)
	assert.Equal(t, "src/a.ts", report.Hits[0].Path)
	assert.Contains(t, buf.String(), "src/a.ts:\n  Line 1: export const a = 1")
}

func TestRun_EndToEnd(t *testing.T) {
	if _, err := exec.LookPath("rg"); err != nil {
		t.Skip("rg not installed")
	}
	g := setupWorkspace(t)

	report, err := Run(context.Background(), nil, g, ripgrep.New(ripgrep.WithCacheDir(t.TempDir())), Options{
		Pattern: "export",
		Path:    "src",
		Include: "*.ts",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Matches)
	assert.False(t, report.Truncated)
	assert.Equal(t, "Found 1 matches\nsrc/a.ts:\n  Line 1: export const a = 1", report.Output)

	report, err = Run(context.Background(), nil, g, ripgrep.New(ripgrep.WithCacheDir(t.TempDir())), Options{
		Pattern: "nothing-matches-this",
	})
	require.NoError(t, err)
	assert.Equal(t, NoMatches, report.Output)
}
