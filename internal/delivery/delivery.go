// Package delivery defines how the application is exposed to the outside world.
package delivery

import "context"

// Delivery is a long-running server started by the process entry point.
type Delivery interface {
	// Serve blocks until the server stops. A clean shutdown returns nil.
	Serve(ctx context.Context) error
}
