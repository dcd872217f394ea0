// Package ripgrep provisions and drives the rg (ripgrep) executable used for
// workspace content search.
//
// Provisioning (provision.go) locates rg on PATH, falls back to a cached copy,
// and downloads the platform release archive on first use. Searching
// (search.go) runs rg with --json and decodes its streamed match records.
package ripgrep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrProvisionFailed wraps download and extraction failures.
var ErrProvisionFailed = errors.New("ripgrep provisioning failed")

// Source records where a Binary came from.
type Source string

const (
	SourceSystem   Source = "system"
	SourceCache    Source = "cache"
	SourceDownload Source = "download"
)

// Binary is a resolved rg executable.
type Binary struct {
	Path    string `json:"path"`
	Version string `json:"version,omitempty"`
	Source  Source `json:"source"`
}

// Provisioner resolves an rg executable at most once. A successful result
// is memoised for the lifetime of the Provisioner; failures are not, so a
// later call retries. Concurrent callers share one in-flight resolution.
type Provisioner struct {
	cacheDir string
	version  string
	baseURL  string
	system   bool
	goarch   string
	goos     string
	client   *http.Client
	lookPath func(string) (string, error)
	logger   *slog.Logger

	mu    sync.Mutex
	bin   *Binary
	group singleflight.Group
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithCacheDir sets where downloaded binaries are stored.
// Relative paths are resolved against the process working directory.
func WithCacheDir(dir string) Option { return func(p *Provisioner) { p.cacheDir = dir } }

// WithVersion pins the ripgrep release to download.
func WithVersion(v string) Option { return func(p *Provisioner) { p.version = v } }

// WithBaseURL overrides the release download prefix.
func WithBaseURL(u string) Option { return func(p *Provisioner) { p.baseURL = strings.TrimRight(u, "/") } }

// WithSystem controls whether rg on PATH is preferred over a download.
func WithSystem(enabled bool) Option { return func(p *Provisioner) { p.system = enabled } }

// WithPlatform overrides the detected architecture and operating system.
func WithPlatform(goarch, goos string) Option {
	return func(p *Provisioner) { p.goarch, p.goos = goarch, goos }
}

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(c *http.Client) Option { return func(p *Provisioner) { p.client = c } }

// WithLookPath replaces exec.LookPath for the PATH lookup.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(p *Provisioner) { p.lookPath = fn }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option { return func(p *Provisioner) { p.logger = l } }

// New creates a Provisioner. Defaults: version DefaultVersion, cache dir
// "bin" under the working directory, PATH lookup enabled.
func New(opts ...Option) *Provisioner {
	p := &Provisioner{
		cacheDir: "bin",
		version:  DefaultVersion,
		baseURL:  DefaultBaseURL,
		system:   true,
		goarch:   runtime.GOARCH,
		goos:     runtime.GOOS,
		client:   &http.Client{Timeout: 5 * time.Minute},
		lookPath: exec.LookPath,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if abs, err := filepath.Abs(p.cacheDir); err == nil {
		p.cacheDir = abs
	}
	return p
}

// CacheDir returns the absolute directory downloaded binaries are kept in.
func (p *Provisioner) CacheDir() string { return p.cacheDir }

// Resolve returns a runnable rg, provisioning it if needed.
//
// The shared resolution runs detached from ctx so one caller giving up does
// not fail the download for everyone else; ctx only bounds this caller's wait.
func (p *Provisioner) Resolve(ctx context.Context) (Binary, error) {
	if b, ok := p.ready(); ok {
		return b, nil
	}

	ch := p.group.DoChan("rg", func() (any, error) {
		if b, ok := p.ready(); ok {
			return b, nil
		}
		b, err := p.resolve(context.WithoutCancel(ctx))
		if err != nil {
			return Binary{}, err
		}
		p.mu.Lock()
		p.bin = &b
		p.mu.Unlock()
		return b, nil
	})

	select {
	case <-ctx.Done():
		return Binary{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Binary{}, r.Err
		}
		return r.Val.(Binary), nil
	}
}

func (p *Provisioner) ready() (Binary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bin == nil {
		return Binary{}, false
	}
	return *p.bin, true
}

func (p *Provisioner) resolve(ctx context.Context) (Binary, error) {
	if p.system {
		if path, err := p.lookPath("rg"); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			p.logger.Debug("using system ripgrep", "path", path)
			return Binary{Path: path, Version: probeVersion(ctx, path), Source: SourceSystem}, nil
		}
	}

	art, err := Lookup(p.goarch, p.goos)
	if err != nil {
		return Binary{}, err
	}

	// Cached binaries live under a per-version directory so changing
	// ripgrep.version never reuses a binary of another release.
	if p.version == "" || p.version == "." || p.version == ".." || strings.ContainsAny(p.version, `/\`) {
		return Binary{}, fmt.Errorf("%w: invalid version %q", ErrProvisionFailed, p.version)
	}
	dir := filepath.Join(p.cacheDir, p.version)
	dst := filepath.Join(dir, BinaryName(p.goos))
	if fi, err := os.Stat(dst); err == nil && fi.Mode().IsRegular() {
		p.logger.Debug("using cached ripgrep", "path", dst)
		return Binary{Path: dst, Version: p.version, Source: SourceCache}, nil
	}

	if err := p.install(ctx, art, dir, dst); err != nil {
		_ = os.Remove(dir) // only succeeds when nothing was left behind
		return Binary{}, err
	}
	return Binary{Path: dst, Version: p.version, Source: SourceDownload}, nil
}

// install downloads the release archive into dir and extracts rg to dst.
func (p *Provisioner) install(ctx context.Context, art Artifact, dir, dst string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create cache dir: %w", ErrProvisionFailed, err)
	}

	archive := filepath.Join(dir, art.Filename(p.version))
	defer os.Remove(archive)

	url := art.URL(p.baseURL, p.version)
	p.logger.Info("downloading ripgrep", "url", url, "dest", dst)
	if err := download(ctx, p.client, url, archive); err != nil {
		return fmt.Errorf("%w: %w", ErrProvisionFailed, err)
	}
	if err := extract(archive, art.Ext, art.Member, dst); err != nil {
		return fmt.Errorf("%w: extract %s: %w", ErrProvisionFailed, art.Filename(p.version), err)
	}
	return nil
}

// probeVersion reads the version from "rg --version". Best effort.
func probeVersion(ctx context.Context, path string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := bytes.Cut(out, []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) >= 2 && fields[0] == "ripgrep" {
		return fields[1]
	}
	return ""
}
