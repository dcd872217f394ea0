// platform.go maps the running platform to a ripgrep release artifact.
//
// Separated from provision.go so the table can be tested without network
// or filesystem access.
//
// Design: the table is keyed by Go's GOARCH and GOOS. Linux x86-64 uses the
// statically linked musl build so the binary runs on any distribution;
// arm64 Linux only has a gnu build upstream.

package ripgrep

import (
	"errors"
	"fmt"
)

// DefaultVersion is the ripgrep release downloaded when none is configured.
const DefaultVersion = "14.1.1"

// DefaultBaseURL is the release download prefix. The version and asset name
// are appended to it.
const DefaultBaseURL = "https://github.com/BurntSushi/ripgrep/releases/download"

// ErrUnsupportedPlatform is returned when no release artifact exists for
// the running architecture and operating system.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Archive formats used by ripgrep releases.
const (
	TarGz = "tar.gz"
	Zip   = "zip"
)

// Artifact identifies a release archive for one platform.
type Artifact struct {
	Triple string // Rust target triple, e.g. x86_64-unknown-linux-musl
	Ext    string // TarGz or Zip
	Member string // executable name inside the archive
}

var artifacts = map[string]Artifact{
	"arm64-darwin":  {Triple: "aarch64-apple-darwin", Ext: TarGz, Member: "rg"},
	"arm64-linux":   {Triple: "aarch64-unknown-linux-gnu", Ext: TarGz, Member: "rg"},
	"amd64-darwin":  {Triple: "x86_64-apple-darwin", Ext: TarGz, Member: "rg"},
	"amd64-linux":   {Triple: "x86_64-unknown-linux-musl", Ext: TarGz, Member: "rg"},
	"amd64-windows": {Triple: "x86_64-pc-windows-msvc", Ext: Zip, Member: "rg.exe"},
}

// Lookup returns the artifact for goarch/goos.
func Lookup(goarch, goos string) (Artifact, error) {
	a, ok := artifacts[goarch+"-"+goos]
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
	}
	return a, nil
}

// Stem returns the archive base name without extension. Release archives
// unpack into a directory of the same name.
func (a Artifact) Stem(version string) string {
	return fmt.Sprintf("ripgrep-%s-%s", version, a.Triple)
}

// Filename returns the archive file name for version.
func (a Artifact) Filename(version string) string {
	return a.Stem(version) + "." + a.Ext
}

// URL returns the download location of the archive under baseURL.
func (a Artifact) URL(baseURL, version string) string {
	return fmt.Sprintf("%s/%s/%s", baseURL, version, a.Filename(version))
}

// BinaryName returns the executable name used on goos.
func BinaryName(goos string) string {
	if goos == "windows" {
		return "rg.exe"
	}
	return "rg"
}
