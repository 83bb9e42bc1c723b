package domain

import "errors"

// Refresh-cycle error kinds. Both abort only the current cycle: the prior
// displayed state stays on screen and the periodic refresh is the sole retry
// mechanism. Adapters wrap these with a descriptive message.
var (
	// ErrTransport marks a fetch that failed or returned a non-2xx status.
	ErrTransport = errors.New("transport error")

	// ErrFormat marks a payload that is not a JSON array.
	ErrFormat = errors.New("format error")
)
