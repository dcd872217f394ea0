package glob

import (
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

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		// Basic patterns
		{"*", "main.go", true},
		{"main*", "main.go", true},
		{"*.md", "readme.md", true},
		{"test", "test", true},
		{"test", "other", false},

		// Base name fallback for slash-free patterns
		{"*.log", "logs/app.log", true},
		{"node_modules", "web/node_modules", true},

		// Single directory patterns
		{"notes/*", "notes/todo", true},
		{"notes/*", "notes/a/b", false},
		{"notes/*", "other/todo", false},

		// Double star
		{"docs/**", "docs/api", true},
		{"docs/**", "docs/api/v1", true},
		{"docs/**", "other/api", false},
		{"**/readme", "docs/readme", true},
		{"**/readme", "readme", true},
		{"**/readme", "docs/other", false},
		{"docs/**/api*", "docs/v1/api-ref", true},
		{"docs/**/api*", "docs/api-main", true},

		// Alternation
		{"*.{ts,tsx}", "a.tsx", true},
		{"*.{ts,tsx}", "a.js", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.path, func(t *testing.T) {
			got, err := Match(tt.pattern, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatch_BadPattern(t *testing.T) {
	_, err := Match("[", "a")
	assert.ErrorIs(t, err, validate.ErrInvalidArgument)
}

func TestMatchAny(t *testing.T) {
	ok, err := MatchAny([]string{"*.tmp", "build"}, "out/build")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = MatchAny(nil, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func setup(t *testing.T) *workspace.Guard {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"src/b.ts", "src/a.ts", "src/lib/c.ts", "src/d.js", "README.md"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	g, err := workspace.New(root)
	require.NoError(t, err)
	return g
}

func TestRun(t *testing.T) {
	g := setup(t)
	ctx := context.Background()

	got, err := Run(ctx, g, Options{Pattern: "**/*.ts"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.ts", "src/b.ts", "src/lib/c.ts"}, got)

	got, err = Run(ctx, g, Options{Pattern: "*.ts", Path: "src"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.ts", "src/b.ts"}, got)

	got, err = Run(ctx, g, Options{Pattern: "*.go"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestRun_Errors(t *testing.T) {
	g := setup(t)
	ctx := context.Background()

	_, err := Run(ctx, g, Options{})
	assert.ErrorIs(t, err, validate.ErrInvalidArgument)

	_, err = Run(ctx, g, Options{Pattern: "*", Path: "../"})
	assert.ErrorIs(t, err, workspace.ErrAccessDenied)

	_, err = Run(ctx, g, Options{Pattern: "../*"})
	assert.ErrorIs(t, err, workspace.ErrAccessDenied)

	_, err = Run(ctx, g, Options{Pattern: "/etc/*"})
	assert.ErrorIs(t, err, validate.ErrInvalidArgument)

	_, err = Run(ctx, g, Options{Pattern: "*", Path: "README.md"})
	assert.ErrorIs(t, err, workspace.ErrNotADirectory)
}

func TestRun_DoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	g := setup(t)
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.ts"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(g.Root(), "link")))

	got, err := Run(context.Background(), g, Options{Pattern: "**/*.ts"})
	require.NoError(t, err)
	assert.NotContains(t, got, "link/secret.ts")
}
