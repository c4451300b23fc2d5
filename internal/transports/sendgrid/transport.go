// Package sendgrid implements the core.Transport interface over the
// SendGrid v3 API.
package sendgrid

import (
	"context"
	"errors"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/lattiq/campaign/internal/core"
)

// Transport implements the core.Transport interface for SendGrid.
// API-backed: Connect builds the client and Close is a no-op.
type Transport struct {
	client *sendgrid.Client
	config core.TransportSettings
}

// NewTransport creates a new SendGrid transport.
func NewTransport(settings core.TransportSettings) (core.Transport, error) {
	if settings.Get("api_key") == "" {
		return nil, core.NewConfigError("api_key", "SendGrid API key is required")
	}

	return &Transport{config: settings}, nil
}

// Connect builds the SendGrid client.
func (t *Transport) Connect(ctx context.Context) error {
	t.client = sendgrid.NewSendClient(t.config.Get("api_key"))

	if ua := t.config.Get("user_agent"); ua != "" {
		t.client.Request.Headers["User-Agent"] = ua
	}
	return nil
}

// Send delivers one message via the SendGrid mail send API.
func (t *Transport) Send(ctx context.Context, msg *core.Message) error {
	from := mail.NewEmail(msg.From.Name, msg.From.Email)
	to := mail.NewEmail(msg.To.Name, msg.To.Email)

	message := mail.NewSingleEmailPlainText(from, msg.Subject, to, msg.Body)

	if len(msg.Headers) > 0 {
		if message.Headers == nil {
			message.Headers = make(map[string]string)
		}
		for key, value := range msg.Headers {
			message.Headers[key] = value
		}
	}

	response, err := t.client.SendWithContext(ctx, message)
	if err != nil {
		return core.NewTransportError(t.Name(), msg.To.Email, err)
	}

	if response.StatusCode >= 400 {
		return core.NewTransportError(t.Name(), msg.To.Email,
			errors.New("SendGrid API error: "+response.Body))
	}

	return nil
}

// Close is a no-op; the SendGrid client holds no persistent connection.
func (t *Transport) Close() error {
	return nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "sendgrid"
}
