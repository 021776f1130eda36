// Package lifecycle holds shared startup and shutdown settings.
package lifecycle

import "time"

// DefaultTimeout bounds each fx start/stop hook.
const DefaultTimeout = 10 * time.Second
