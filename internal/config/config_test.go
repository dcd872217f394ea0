package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := &Config{}
	assert.Equal(t, DefaultMaxMatches, c.MaxMatches())
	assert.Equal(t, 30*time.Second, c.SearchTimeout())
	assert.Equal(t, DefaultRipgrepVersion, c.RipgrepVersion())
	assert.True(t, c.RipgrepSystem())
	assert.Equal(t, 2000, c.ReadLimit())
	assert.Equal(t, 120*time.Second, c.ShellTimeout())
	assert.Equal(t, 10*time.Second, c.WebTimeout())
	assert.Equal(t, 100000, c.WebMaxContent())
	assert.Equal(t, DefaultMaxPath, c.MaxPath())
	assert.Equal(t, int64(DefaultMaxContent), c.MaxContent())
	assert.Equal(t, DefaultMaxLineLength, c.MaxLineLength())
	assert.Equal(t, "bin", c.RipgrepCacheDir())
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"author.name", "alice", "alice"},
		{"search.max_matches", "25", "25"},
		{"search.timeout", "45s", "45s"},
		{"ripgrep.version", "v14.0.0", "14.0.0"},
		{"ripgrep.cache_dir", "/tmp/rg", "/tmp/rg"},
		{"ripgrep.system", "FALSE", "false"},
		{"read.limit", "50", "50"},
		{"shell.timeout", "2m", "2m0s"},
		{"web.timeout", "500ms", "500ms"},
		{"web.max_content", "10", "10"},
		{"limits.max_path", "2048", "2048"},
		{"limits.max_content", "4096", "4096"},
		{"limits.max_line_length", "100", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := &Config{}
			assert.False(t, c.IsSet(tt.key))
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, c.IsSet(tt.key))
		})
	}
}

func TestSetInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"search.max_matches", "0"},
		{"search.max_matches", "many"},
		{"search.timeout", "soon"},
		{"search.timeout", "-1s"},
		{"shell.timeout", "2h"},
		{"ripgrep.system", "maybe"},
		{"limits.max_path", "100000"},
		{"limits.max_content", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			c := &Config{}
			assert.ErrorIs(t, c.Set(tt.key, tt.value), ErrInvalidValue)
		})
	}

	c := &Config{}
	assert.ErrorIs(t, c.Set("nope", "1"), ErrUnknownKey)
	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, IsValidKey("nope"))
}

func TestAllCoversValidKeys(t *testing.T) {
	all := (&Config{}).All()
	for _, k := range ValidKeys() {
		assert.Contains(t, all, k)
		assert.True(t, IsValidKey(k))
	}
	assert.Len(t, all, len(ValidKeys()))
}

func TestLoadLocalOverGlobal(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Chdir(work)

	global := &Config{}
	require.NoError(t, global.Set("read.limit", "10"))
	require.NoError(t, global.SaveScope(ScopeGlobal))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeGlobal, c.Scope())
	assert.Equal(t, 10, c.ReadLimit())

	local := &Config{}
	require.NoError(t, local.Set("read.limit", "20"))
	require.NoError(t, local.SaveScope(ScopeLocal))

	c, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, c.Scope())
	assert.Equal(t, 20, c.ReadLimit())
	assert.FileExists(t, filepath.Join(work, Dir, "config.yaml"))
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	malformed := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(malformed, []byte("search: [\n"), 0644))
	_, err := loadPath(malformed, ScopeLocal)
	assert.ErrorContains(t, err, "malformed config file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("web:\n  timeout: never\n"), 0644))
	_, err = loadPath(invalid, ScopeLocal)
	assert.ErrorIs(t, err, ErrInvalidValue)

	c, err := loadPath(filepath.Join(dir, "missing.yaml"), ScopeLocal)
	require.NoError(t, err)
	assert.Equal(t, DefaultReadLimit, c.ReadLimit())
}
