package campaign

import (
	"time"

	"github.com/lattiq/campaign/internal/core"
)

// Config holds the complete run configuration. It is resolved once by the
// caller and is immutable for the duration of a run; the send loop never
// reads ambient process state.
type Config struct {
	// Sender is the run's sender identity. It always wins over contact
	// fields of the same name when render contexts are merged.
	Sender SenderConfig

	// Transport contains transport-specific configuration.
	Transport TransportConfig

	// DryRun renders and previews messages without opening a connection
	// or sending anything.
	DryRun bool

	// Limit caps the number of contacts processed in one run (0 = all).
	Limit int

	// Delay is the pause between consecutive sends, used as a rate
	// limiter against relay throttling. Never applied in dry-run mode
	// and never after the last contact processed.
	Delay time.Duration
}

// SenderConfig is the sender identity for a run.
type SenderConfig struct {
	// Name is the display name used in the From header (optional).
	Name string

	// Email is the sender address. Required unless DryRun is set.
	Email string
}

// TransportConfig contains transport-specific settings.
type TransportConfig struct {
	// Type specifies the mail transport to use.
	Type TransportType

	// Settings contains settings for the transport.
	Settings TransportSettings
}

// TransportType represents the type of mail transport.
type TransportType string

const (
	// TransportSMTP represents a generic SMTP relay.
	TransportSMTP TransportType = "smtp"

	// TransportAWSSES represents Amazon Simple Email Service.
	TransportAWSSES TransportType = "aws_ses"

	// TransportSendGrid represents the SendGrid email service.
	TransportSendGrid TransportType = "sendgrid"

	// TransportMailgun represents the Mailgun email service.
	TransportMailgun TransportType = "mailgun"
)

// String returns the string representation of the transport type.
func (tt TransportType) String() string {
	return string(tt)
}

// Valid checks if the transport type is supported.
func (tt TransportType) Valid() bool {
	switch tt {
	case TransportSMTP, TransportAWSSES, TransportSendGrid, TransportMailgun:
		return true
	default:
		return false
	}
}

// Security modes for the SMTP transport's "security" setting.
const (
	// SecurityNone uses a plaintext connection.
	SecurityNone = "none"

	// SecurityStartTLS upgrades the connection opportunistically.
	SecurityStartTLS = "starttls"

	// SecurityImplicitTLS encrypts from the first byte.
	SecurityImplicitTLS = "implicit_tls"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Transport: TransportConfig{
			Type:     TransportSMTP,
			Settings: TransportSettings{},
		},
		DryRun: false,
		Limit:  0,
		Delay:  0,
	}
}

// Validate checks if the configuration is valid and complete.
// Relay and sender settings are not required for dry runs, which never
// open a connection.
func (c *Config) Validate() error {
	if c.Limit < 0 {
		return core.NewConfigError("limit", "row limit must not be negative")
	}

	if c.Delay < 0 {
		return core.NewConfigError("delay", "inter-send delay must not be negative")
	}

	if c.DryRun {
		return nil
	}

	if !c.Transport.Type.Valid() {
		return core.NewConfigError("transport.type",
			"invalid or unsupported transport type: "+string(c.Transport.Type))
	}

	if c.Sender.Email == "" {
		return core.NewConfigError("sender.email", "sender address is required")
	}

	switch c.Transport.Type {
	case TransportSMTP:
		if c.Transport.Settings.Get("host") == "" {
			return core.NewConfigError("transport.host", "SMTP host is required")
		}
	case TransportAWSSES:
		if c.Transport.Settings.Get("region") == "" {
			return core.NewConfigError("transport.region", "AWS region is required")
		}
	case TransportSendGrid:
		if c.Transport.Settings.Get("api_key") == "" {
			return core.NewConfigError("transport.api_key", "SendGrid API key is required")
		}
	case TransportMailgun:
		if c.Transport.Settings.Get("api_key") == "" {
			return core.NewConfigError("transport.api_key", "Mailgun API key is required")
		}
		if c.Transport.Settings.Get("domain") == "" {
			return core.NewConfigError("transport.domain", "Mailgun domain is required")
		}
	}

	return nil
}
