package campaign

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option is a functional option for configuring the campaign runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-contact outcome events.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithPreviewWriter sets the destination for dry-run preview blocks.
// Defaults to stdout.
func WithPreviewWriter(w io.Writer) Option {
	return func(r *Runner) {
		r.preview = w
	}
}

// WithTransport overrides the transport built from the configuration.
// Useful for tests and for callers that construct their own transport.
func WithTransport(t Transport) Option {
	return func(r *Runner) {
		r.transport = t
	}
}

// WithClock overrides the renderer's date source for the {{today}}
// built-in. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}
