package app

import (
	"context"

	"go.trai.ch/prebuild/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Tracer ports.Tracer
}

// Close flushes and shuts down the tracer.
func (c *Components) Close(ctx context.Context) error {
	if c == nil || c.Tracer == nil {
		return nil
	}
	return c.Tracer.Shutdown(ctx)
}
