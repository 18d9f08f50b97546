package ignition

import (
	"context"
	"errors"
	"fmt"

	"github.com/zoobzio/capitan"
)

// ErrNoRootSurface is returned by Bootstrap when the host provides no root
// surface. There is nowhere to mount the interface; this is a fatal
// misconfiguration, not a transient condition.
var ErrNoRootSurface = errors.New("root surface not found")

// Surface is a host-provided mount point for the application interface.
// Activate is called exactly once per process on success.
type Surface interface {
	Activate(ctx context.Context, c *Controller) error
}

// Host exposes the surfaces the hosting environment provides.
type Host interface {
	// RootSurface returns the designated root surface, or false when the
	// host did not provide one.
	RootSurface() (Surface, bool)
}

// Bootstrap locates the host's root surface, activates it, and hands
// control to the Controller. It performs no decision logic of its own.
//
// A missing surface or a failed activation is fatal: the error is emitted
// and returned, and nothing else happens: no retry, no readiness race.
func Bootstrap(ctx context.Context, host Host, c *Controller) error {
	surface, ok := host.RootSurface()
	if !ok {
		capitan.Emit(ctx, BootstrapFailed,
			KeyError.Field(ErrNoRootSurface.Error()),
		)
		return ErrNoRootSurface
	}

	if err := surface.Activate(ctx, c); err != nil {
		capitan.Emit(ctx, BootstrapFailed,
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("activate root surface: %w", err)
	}

	capitan.Emit(ctx, BootstrapMounted)
	c.Start(ctx)
	return nil
}
