package campaign

import (
	"github.com/lattiq/campaign/internal/core"
)

// Type aliases to re-export the core error taxonomy for the public API.
// Only LoadError, ConfigError and ConnectionError are run-fatal;
// TransportError is isolated to the offending contact and CloseError is
// swallowed by the send loop.
type (
	LoadError       = core.LoadError
	ConfigError     = core.ConfigError
	ConnectionError = core.ConnectionError
	TransportError  = core.TransportError
	CloseError      = core.CloseError
)

// Error constructor functions
var (
	NewLoadError       = core.NewLoadError
	NewConfigError     = core.NewConfigError
	NewConnectionError = core.NewConnectionError
	NewTransportError  = core.NewTransportError
	NewCloseError      = core.NewCloseError

	// IsFatal reports whether an error must abort the run.
	IsFatal = core.IsFatal
)
