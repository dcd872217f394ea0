package ripgrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		goarch, goos string
		triple, ext  string
		member       string
	}{
		{"arm64", "darwin", "aarch64-apple-darwin", TarGz, "rg"},
		{"arm64", "linux", "aarch64-unknown-linux-gnu", TarGz, "rg"},
		{"amd64", "darwin", "x86_64-apple-darwin", TarGz, "rg"},
		{"amd64", "linux", "x86_64-unknown-linux-musl", TarGz, "rg"},
		{"amd64", "windows", "x86_64-pc-windows-msvc", Zip, "rg.exe"},
	}
	for _, tt := range tests {
		t.Run(tt.goarch+"-"+tt.goos, func(t *testing.T) {
			a, err := Lookup(tt.goarch, tt.goos)
			require.NoError(t, err)
			assert.Equal(t, tt.triple, a.Triple)
			assert.Equal(t, tt.ext, a.Ext)
			assert.Equal(t, tt.member, a.Member)
		})
	}
}

func TestLookup_Unsupported(t *testing.T) {
	for _, p := range [][2]string{{"riscv64", "linux"}, {"arm64", "windows"}, {"amd64", "freebsd"}} {
		_, err := Lookup(p[0], p[1])
		assert.ErrorIs(t, err, ErrUnsupportedPlatform, "%s/%s", p[1], p[0])
	}
}

func TestArtifact_URL(t *testing.T) {
	a, err := Lookup("amd64", "linux")
	require.NoError(t, err)
	assert.Equal(t, "ripgrep-14.1.1-x86_64-unknown-linux-musl.tar.gz", a.Filename("14.1.1"))
	assert.Equal(t,
		"https://github.com/BurntSushi/ripgrep/releases/download/14.1.1/ripgrep-14.1.1-x86_64-unknown-linux-musl.tar.gz",
		a.URL(DefaultBaseURL, "14.1.1"))
}

func TestBinaryName(t *testing.T) {
	assert.Equal(t, "rg.exe", BinaryName("windows"))
	assert.Equal(t, "rg", BinaryName("linux"))
}
