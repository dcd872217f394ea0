package write

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T) *workspace.Guard {
	t.Helper()
	g, err := workspace.New(t.TempDir())
	require.NoError(t, err)
	return g
}

func TestRun_CreatesWithParents(t *testing.T) {
	g := newGuard(t)
	var buf bytes.Buffer

	r, err := Run(context.Background(), &buf, g, "a/b/c.txt", "hello", Options{})
	require.NoError(t, err)
	assert.Equal(t, Result{Path: "a/b/c.txt", Bytes: 5, Created: true}, r)
	assert.Equal(t, "Created a/b/c.txt (5 bytes)\n", buf.String())

	data, err := os.ReadFile(filepath.Join(g.Root(), "a", "b", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestRun_Overwrites(t *testing.T) {
	g := newGuard(t)
	p := filepath.Join(g.Root(), "f.txt")
	require.NoError(t, os.WriteFile(p, []byte("old"), 0o600))

	r, err := Run(context.Background(), nil, g, "f.txt", "", Options{})
	require.NoError(t, err)
	assert.False(t, r.Created)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Empty(t, data)
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestRun_Errors(t *testing.T) {
	g := newGuard(t)
	require.NoError(t, os.MkdirAll(filepath.Join(g.Root(), "dir"), 0o755))
	ctx := context.Background()

	_, err := Run(ctx, nil, g, "", "x", Options{})
	assert.ErrorIs(t, err, validate.ErrInvalidArgument)

	_, err = Run(ctx, nil, g, "../escape.txt", "x", Options{})
	assert.ErrorIs(t, err, workspace.ErrAccessDenied)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(g.Root()), "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = Run(ctx, nil, g, "dir", "x", Options{})
	assert.ErrorIs(t, err, workspace.ErrIsADirectory)

	_, err = Run(ctx, nil, g, ".", "x", Options{})
	assert.ErrorIs(t, err, workspace.ErrIsADirectory)

	_, err = Run(ctx, nil, g, "big.txt", "0123456789", Options{MaxContent: 4})
	assert.ErrorIs(t, err, validate.ErrContentTooLarge)

	_, err = Run(ctx, nil, g, "new.txt", "x", Options{NoCreate: true})
	assert.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestRun_RejectsEscapingSymlinkParent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	g := newGuard(t)
	outside := t.TempDir()
	require.NoError(t, os.Symlink(outside, filepath.Join(g.Root(), "out")))

	_, err := Run(context.Background(), nil, g, "out/pwned.txt", "x", Options{})
	require.ErrorIs(t, err, workspace.ErrAccessDenied)
	_, statErr := os.Stat(filepath.Join(outside, "pwned.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
