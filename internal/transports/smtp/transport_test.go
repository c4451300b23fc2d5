package smtp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattiq/campaign/internal/core"
)

func TestNewTransportRequiresHost(t *testing.T) {
	_, err := NewTransport(core.TransportSettings{})

	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "host", cfgErr.Field)
}

func TestNewTransportDefaultsPort(t *testing.T) {
	settings := core.TransportSettings{"host": "smtp.example.com"}

	_, err := NewTransport(settings)

	require.NoError(t, err)
	assert.Equal(t, "587", settings.Get("port"))
}

func TestNewTransportRejectsBadPort(t *testing.T) {
	_, err := NewTransport(core.TransportSettings{
		"host": "smtp.example.com",
		"port": "not-a-port",
	})

	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "port", cfgErr.Field)
}

func TestNewTransportRejectsUnknownSecurityMode(t *testing.T) {
	_, err := NewTransport(core.TransportSettings{
		"host":     "smtp.example.com",
		"security": "wishful",
	})

	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "security", cfgErr.Field)
}

func TestSendWithoutConnect(t *testing.T) {
	transport, err := NewTransport(core.TransportSettings{"host": "smtp.example.com"})
	require.NoError(t, err)

	msg := core.NewMessage("Maya", "maya@example.com", "a@x.com", "S", "B")
	err = transport.Send(context.Background(), msg)

	var transportErr *core.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "a@x.com", transportErr.Recipient)
}

func TestCloseWithoutConnect(t *testing.T) {
	transport, err := NewTransport(core.TransportSettings{"host": "smtp.example.com"})
	require.NoError(t, err)

	assert.NoError(t, transport.Close())
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := core.NewMessage("Maya", "maya@example.com", "a@x.com", "Hello Ana", "Hi Ana,\nwelcome.")

	raw := string(BuildMessage(msg))

	assert.Contains(t, raw, "From: Maya <maya@example.com>\r\n")
	assert.Contains(t, raw, "To: a@x.com\r\n")
	assert.Contains(t, raw, "Subject: Hello Ana\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(raw, "Hi Ana,\nwelcome.\r\n"))
}

func TestBuildMessageBareFromAddress(t *testing.T) {
	msg := core.NewMessage("", "maya@example.com", "a@x.com", "S", "B")

	raw := string(BuildMessage(msg))

	assert.Contains(t, raw, "From: maya@example.com\r\n")
}

func TestBuildMessageCustomHeaders(t *testing.T) {
	msg := core.NewMessage("", "maya@example.com", "a@x.com", "S", "B")
	msg.Headers = map[string]string{"X-Campaign": "launch"}

	raw := string(BuildMessage(msg))

	assert.Contains(t, raw, "X-Campaign: launch\r\n")
}

func TestBuildMessageSeparatesHeadersFromBody(t *testing.T) {
	msg := core.NewMessage("", "maya@example.com", "a@x.com", "S", "The body")

	raw := string(BuildMessage(msg))

	headerEnd := strings.Index(raw, "\r\n\r\n")
	require.Positive(t, headerEnd)
	assert.NotContains(t, raw[:headerEnd], "The body")
}
