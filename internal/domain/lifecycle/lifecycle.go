// Package lifecycle holds shared constants for component start and stop
// behavior.
package lifecycle

import "time"

// DefaultTimeout bounds how long a component may take to start or shut
// down before the hook gives up.
const DefaultTimeout = 10 * time.Second
