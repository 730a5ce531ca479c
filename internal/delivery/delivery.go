// Package delivery defines the inbound transport contract. Each
// delivery (HTTP today) is collected into an Fx group and served from
// the composition root.
package delivery

import "context"

// Delivery is a long-running inbound server.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
