package console

import "errors"

// Initialization and layout failures. Startup errors abort the session
// before the loop; layout errors leave it running in degraded mode.
var (
	// ErrNotTerminal means stdin is not attached to a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrNoColorSupport means the terminal advertises no color capability.
	ErrNoColorSupport = errors.New("terminal has no color support")

	// ErrTerminalTooSmall means the current dimensions cannot fit the
	// minimum two-pane layout.
	ErrTerminalTooSmall = errors.New("terminal too small")
)
