// context.go defines the Context interface for extension access to the
// shared workspace state.
//
// Design: Extensions receive Context during Init(), not at construction,
// because they register in init() before flags (--root) are parsed.

package extension

import (
	"github.com/jpl-au/llmfs/internal/config"
	"github.com/jpl-au/llmfs/internal/ripgrep"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// Context provides extensions controlled access to shared resources.
type Context interface {
	// Workspace returns the guard every caller-supplied path goes through.
	Workspace() *workspace.Guard

	// Config returns user configuration.
	Config() *config.Config

	// Ripgrep returns the process-wide search binary provisioner.
	Ripgrep() *ripgrep.Provisioner
}

type extContext struct {
	guard *workspace.Guard
	cfg   *config.Config
	rg    *ripgrep.Provisioner
}

// NewContext creates a new extension context.
func NewContext(g *workspace.Guard, cfg *config.Config, rg *ripgrep.Provisioner) Context {
	return &extContext{guard: g, cfg: cfg, rg: rg}
}

func (c *extContext) Workspace() *workspace.Guard   { return c.guard }
func (c *extContext) Config() *config.Config        { return c.cfg }
func (c *extContext) Ripgrep() *ripgrep.Provisioner { return c.rg }
