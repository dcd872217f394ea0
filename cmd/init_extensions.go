/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that resolves
// the workspace, loads config, and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. The guard, config and ripgrep provisioner are
// created once and shared across all extensions via the Context, so every
// grep in a process reuses one provisioned binary.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/config"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/ripgrep"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// standaloneCommands lists commands that skip workspace initialisation.
// Built from extensions implementing extension.Standalone.
var standaloneCommands map[string]bool

func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{"help": true, "completion": true}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Standalone); ok {
			for _, name := range s.StandaloneCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// ExtContext returns the shared extension context, or nil before
// initialisation. Used by commands that hand the context to another layer
// (the MCP server).
func ExtContext() extension.Context { return extContext }

// initExtensions resolves the workspace and injects the shared context into
// all Initializable extensions.
func initExtensions() error {
	initOnce.Do(func() {
		dir, err := Root()
		if err != nil {
			initErr = err
			return
		}
		g, err := workspace.New(dir)
		if err != nil {
			initErr = fmt.Errorf("workspace %s: %w", dir, err)
			return
		}
		log.SetWorkspace(g.Root())

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		rg := ripgrep.New(
			ripgrep.WithCacheDir(cfg.RipgrepCacheDir()),
			ripgrep.WithVersion(cfg.RipgrepVersion()),
			ripgrep.WithSystem(cfg.RipgrepSystem()),
			ripgrep.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
		)
		extContext = extension.NewContext(g, cfg, rg)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		standaloneCommands = buildStandaloneCommands()
	})
}
