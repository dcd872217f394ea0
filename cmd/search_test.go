package cmd

import (
	"encoding/json"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchEnv(t *testing.T) *testEnv {
	env := newTestEnv(t)
	env.file("README.md", "# demo\nTODO: docs\n")
	env.file("src/a.ts", "export const a = 1\n")
	env.file("src/b.js", "export const b = 2\n")
	env.file("src/deep/c.ts", "// TODO: c\n")
	return env
}

func TestGlob(t *testing.T) {
	env := searchEnv(t)

	out := env.run("glob", "**/*.ts")
	env.equals(out, "src/a.ts\nsrc/deep/c.ts")

	out = env.run("glob", "*.js", "src")
	env.equals(out, "src/b.js")

	out = env.run("glob", "**/*.ts", "-o", "json")
	var paths []string
	require.NoError(t, json.Unmarshal([]byte(out), &paths))
	assert.Equal(t, []string{"src/a.ts", "src/deep/c.ts"}, paths)

	out, err := env.runErr("glob", "../*")
	assert.Error(t, err)
	env.contains(out, "access denied")
}

func TestScan(t *testing.T) {
	env := searchEnv(t)

	out := env.run("scan", "TODO")
	env.equals(out, "README.md:2:TODO: docs\nsrc/deep/c.ts:1:// TODO: c")

	out = env.run("scan", "-i", "todo", "src")
	env.equals(out, "src/deep/c.ts:1:// TODO: c")

	out, err := env.runErr("scan", "(")
	assert.Error(t, err)
	env.contains(out, "invalid argument")
}

func TestGrep(t *testing.T) {
	if _, err := exec.LookPath("rg"); err != nil {
		t.Skip("rg not on PATH")
	}
	env := searchEnv(t)

	out := env.run("grep", "export", "src", "--include", "*.ts")
	env.contains(out, "Found 1 matches")
	env.contains(out, "src/a.ts:")
	env.contains(out, "Line 1: export const a = 1")
	assert.NotContains(t, out, "b.js")

	out = env.run("grep", "nothing-matches-this")
	env.equals(out, "No matches found")

	out = env.run("grep", "export", "-n", "1", "-o", "json")
	var report struct {
		Matches   int  `json:"matches"`
		Truncated bool `json:"truncated"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Matches)
	assert.True(t, report.Truncated)

	out = env.run("rg", "path")
	env.contains(out, "rg")
}
