// Package smtp implements the core.Transport interface over a single
// persistent SMTP connection, reused for sequential deliveries.
package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/lattiq/campaign/internal/core"
)

// Security modes accepted in the "security" setting.
const (
	SecurityNone        = "none"
	SecurityStartTLS    = "starttls"
	SecurityImplicitTLS = "implicit_tls"
)

// Transport implements the core.Transport interface for a generic SMTP
// relay. It is not safe for concurrent use; the send loop owns it for
// the lifetime of a run.
type Transport struct {
	config core.TransportSettings
	client *smtp.Client
}

// NewTransport creates a new SMTP transport.
func NewTransport(settings core.TransportSettings) (core.Transport, error) {
	host := settings.Get("host")
	if host == "" {
		return nil, core.NewConfigError("host", "SMTP host is required")
	}

	port := settings.Get("port")
	if port == "" {
		settings.Set("port", "587")
		port = "587"
	}

	if _, err := strconv.Atoi(port); err != nil {
		return nil, core.NewConfigError("port", "invalid port number: "+port)
	}

	switch security := settings.Get("security"); security {
	case "", SecurityNone, SecurityStartTLS, SecurityImplicitTLS:
	default:
		return nil, core.NewConfigError("security", "unsupported security mode: "+security)
	}

	return &Transport{config: settings}, nil
}

// Connect dials the relay, performs the configured TLS handshake and
// authenticates when credentials are present. A failure at any of these
// steps is fatal to the run; no sends are possible without a connection.
func (t *Transport) Connect(ctx context.Context) error {
	host := t.config.Get("host")
	port := t.config.Get("port")
	security := t.config.Get("security")
	if security == "" {
		security = SecurityStartTLS
	}

	addr := net.JoinHostPort(host, port)

	var tlsConfig *tls.Config
	if security != SecurityNone {
		tlsConfig = &tls.Config{
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		}
		// Only for development relays with self-signed certificates.
		if t.config.Get("tls_skip_verify") == "true" {
			tlsConfig.InsecureSkipVerify = true
		}
	}

	dialer := &net.Dialer{Timeout: 30 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return core.NewConnectionError(t.Name(), "dial "+addr+" failed", err)
	}

	if security == SecurityImplicitTLS {
		conn = tls.Client(conn, tlsConfig)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return core.NewConnectionError(t.Name(), "SMTP greeting failed", err)
	}

	if security == SecurityStartTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return core.NewConnectionError(t.Name(), "STARTTLS upgrade failed", err)
		}
	}

	username := t.config.Get("username")
	password := t.config.Get("password")
	if username != "" && password != "" {
		auth := smtp.PlainAuth("", username, password, host)
		if err := client.Auth(auth); err != nil {
			client.Close()
			return core.NewConnectionError(t.Name(), "authentication failed", err)
		}
	}

	t.client = client
	return nil
}

// Send delivers one message over the established connection. A rejection
// or dropped connection is returned as a *core.TransportError; the
// transaction is reset so the connection stays usable for the next send.
func (t *Transport) Send(ctx context.Context, msg *core.Message) error {
	if t.client == nil {
		return core.NewTransportError(t.Name(), msg.To.Email, errors.New("not connected"))
	}

	if err := t.transact(msg); err != nil {
		// Best effort: abort the failed transaction so subsequent
		// sends reuse the connection.
		_ = t.client.Reset()
		return core.NewTransportError(t.Name(), msg.To.Email, err)
	}

	return nil
}

func (t *Transport) transact(msg *core.Message) error {
	if err := t.client.Mail(msg.From.Email); err != nil {
		return err
	}
	if err := t.client.Rcpt(msg.To.Email); err != nil {
		return err
	}

	w, err := t.client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(BuildMessage(msg)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// Close releases the connection with a QUIT. Called exactly once at the
// end of a run; the caller swallows any error.
func (t *Transport) Close() error {
	if t.client == nil {
		return nil
	}

	client := t.client
	t.client = nil

	if err := client.Quit(); err != nil {
		return core.NewCloseError(t.Name(), err)
	}
	return nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "smtp"
}

// BuildMessage serializes the message in RFC 5322 format with a single
// plain-text part.
func BuildMessage(msg *core.Message) []byte {
	var b strings.Builder

	b.WriteString("From: " + msg.From.String() + "\r\n")
	b.WriteString("To: " + msg.To.String() + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")

	for key, value := range msg.Headers {
		b.WriteString(key + ": " + value + "\r\n")
	}

	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body + "\r\n")

	return []byte(b.String())
}
