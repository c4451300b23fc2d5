// Package mailgun implements the core.Transport interface over the
// Mailgun API.
package mailgun

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/lattiq/campaign/internal/core"
)

// Transport implements the core.Transport interface for Mailgun.
// API-backed: Connect builds the client and Close is a no-op.
type Transport struct {
	client mailgun.Mailgun
	config core.TransportSettings
}

// NewTransport creates a new Mailgun transport.
func NewTransport(settings core.TransportSettings) (core.Transport, error) {
	if settings.Get("api_key") == "" {
		return nil, core.NewConfigError("api_key", "Mailgun API key is required")
	}
	if settings.Get("domain") == "" {
		return nil, core.NewConfigError("domain", "Mailgun domain is required")
	}

	return &Transport{config: settings}, nil
}

// Connect builds the Mailgun client.
func (t *Transport) Connect(ctx context.Context) error {
	client := mailgun.NewMailgun(t.config.Get("domain"), t.config.Get("api_key"))

	// EU customers use a different API base.
	if baseURL := t.config.Get("base_url"); baseURL != "" {
		client.SetAPIBase(baseURL)
	}

	t.client = client
	return nil
}

// Send delivers one message via the Mailgun messages API.
func (t *Transport) Send(ctx context.Context, msg *core.Message) error {
	message := t.client.NewMessage(msg.From.String(), msg.Subject, msg.Body, msg.To.String())

	for key, value := range msg.Headers {
		message.AddHeader(key, value)
	}

	if _, _, err := t.client.Send(ctx, message); err != nil {
		return core.NewTransportError(t.Name(), msg.To.Email, err)
	}

	return nil
}

// Close is a no-op; the Mailgun client holds no persistent connection.
func (t *Transport) Close() error {
	return nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "mailgun"
}
