// context.go defines the Context interface for extension access to docq
// internals.
//
// Extensions receive Context during Init(), not at construction, because
// they register before the repository has been opened.

package extension

import (
	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/service"
)

// Context provides extensions controlled access to docq internals.
type Context interface {
	// Service returns the document and query service.
	Service() service.Service

	// Config returns the merged user configuration.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return &extContext{svc: svc, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }
