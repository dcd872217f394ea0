package ls

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *workspace.Guard {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"b.txt":             "bb",
		"a.txt":             "a",
		"src/main.go":       "package main",
		"src/lib/util.go":   "package lib",
		"node_modules/x.js": "x",
		".env":              "SECRET=1",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	g, err := workspace.New(root)
	require.NoError(t, err)
	return g
}

func TestRun(t *testing.T) {
	g := setup(t)
	var buf bytes.Buffer

	r, err := Run(context.Background(), &buf, g, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "node_modules", "src"}, r.Names())
	assert.Equal(t, "a.txt\nb.txt\nnode_modules/\nsrc/\n", buf.String())
	assert.Equal(t, ".", r.Path)
}

func TestRun_HiddenAndIgnore(t *testing.T) {
	g := setup(t)

	r, err := Run(context.Background(), nil, g, Options{Hidden: true, Ignore: []string{"node_modules", "*.txt"}})
	require.NoError(t, err)
	assert.Equal(t, []string{".env", "src"}, r.Names())
}

func TestRun_Subdirectory(t *testing.T) {
	g := setup(t)

	r, err := Run(context.Background(), nil, g, Options{Path: "src"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib", "main.go"}, r.Names())
	assert.Equal(t, "src/main.go", r.Entries[1].Path)
	assert.True(t, r.Entries[0].IsDir)
}

func TestRun_Tree(t *testing.T) {
	g := setup(t)
	var buf bytes.Buffer

	r, err := Run(context.Background(), &buf, g, Options{Path: "src", Tree: true})
	require.NoError(t, err)
	assert.Len(t, r.Entries, 3)
	assert.Equal(t, "├── lib/\n│   └── util.go\n└── main.go\n", buf.String())

	r, err = Run(context.Background(), nil, g, Options{Tree: true, Depth: 1, Ignore: []string{"node_modules"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "src"}, r.Names())
}

func TestRun_Sort(t *testing.T) {
	g := setup(t)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(g.Root(), "b.txt"), old, old))

	r, err := Run(context.Background(), nil, g, Options{Sort: SortSize, Ignore: []string{"src", "node_modules"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "a.txt"}, r.Names())

	r, err = Run(context.Background(), nil, g, Options{Sort: SortTime, Ignore: []string{"src", "node_modules"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, r.Names())

	r, err = Run(context.Background(), nil, g, Options{Sort: SortName, Reverse: true, Ignore: []string{"src", "node_modules"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "a.txt"}, r.Names())
}

func TestRun_Errors(t *testing.T) {
	g := setup(t)
	ctx := context.Background()

	_, err := Run(ctx, nil, g, Options{Path: "missing"})
	assert.ErrorIs(t, err, workspace.ErrNotFound)

	_, err = Run(ctx, nil, g, Options{Path: "a.txt"})
	assert.ErrorIs(t, err, workspace.ErrNotADirectory)

	_, err = Run(ctx, nil, g, Options{Path: ".."})
	assert.ErrorIs(t, err, workspace.ErrAccessDenied)

	_, err = Run(ctx, nil, g, Options{Ignore: []string{"["}})
	assert.ErrorIs(t, err, validate.ErrInvalidArgument)
}
