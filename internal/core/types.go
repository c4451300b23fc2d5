package core

import (
	"context"
	"mime"
	"strings"
)

// Transport defines the interface for mail transports.
// A transport owns at most one delivery channel per run: Connect acquires
// it, Send reuses it for sequential deliveries, Close releases it.
type Transport interface {
	// Connect acquires the transport's delivery channel and authenticates
	// if credentials are configured. For API-backed transports this only
	// validates the client configuration.
	Connect(ctx context.Context) error

	// Send delivers a single message over the established channel.
	Send(ctx context.Context, msg *Message) error

	// Close releases the delivery channel. Safe to call once after Connect.
	Close() error

	// Name returns the transport's name for identification and logging.
	Name() string
}

// TransportSettings represents configuration settings for mail transports.
type TransportSettings map[string]string

// Get retrieves a configuration value by key.
func (ts TransportSettings) Get(key string) string {
	return ts[key]
}

// Set sets a configuration value.
func (ts TransportSettings) Set(key, value string) {
	ts[key] = value
}

// Contact is one row of the contact source: a mapping from lower-cased,
// trimmed field name to trimmed value. A field that was present in the
// header is always readable; missing cells are empty strings.
type Contact map[string]string

// Email returns the contact's email field, trimmed.
func (c Contact) Email() string {
	return strings.TrimSpace(c["email"])
}

// Address represents an email address with optional display name.
type Address struct {
	Name  string `json:"name"`  // Display name (optional)
	Email string `json:"email"` // Email address (required)
}

// String returns the formatted email address.
// If Name is provided, returns "Name <email@domain.com>"
// Otherwise returns just "email@domain.com"
func (a Address) String() string {
	if a.Name != "" {
		return mime.QEncoding.Encode("UTF-8", a.Name) + " <" + a.Email + ">"
	}
	return a.Email
}

// Message is a transport-ready email message with a single plain-text part.
type Message struct {
	From    Address           `json:"from"`    // Sender address
	To      Address           `json:"to"`      // Recipient address
	Subject string            `json:"subject"` // Rendered subject
	Body    string            `json:"body"`    // Rendered plain-text body
	Headers map[string]string `json:"headers"` // Custom headers (optional)
}

// NewMessage assembles a message from sender identity, recipient and
// rendered content. Address syntax is not validated here; a malformed
// address surfaces as a transport error at send time.
func NewMessage(fromName, fromEmail, toEmail, subject, body string) *Message {
	return &Message{
		From:    Address{Name: fromName, Email: fromEmail},
		To:      Address{Email: toEmail},
		Subject: subject,
		Body:    body,
	}
}

// Outcome classifies the result of processing one contact.
type Outcome int

const (
	// OutcomeSent indicates the message was accepted by the transport.
	OutcomeSent Outcome = iota

	// OutcomeSkippedNoEmail indicates the contact had no email field.
	OutcomeSkippedNoEmail

	// OutcomeSendFailed indicates the transport rejected the message.
	OutcomeSendFailed

	// OutcomePreviewed indicates the message was rendered in dry-run mode.
	OutcomePreviewed
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeSkippedNoEmail:
		return "skipped-no-email"
	case OutcomeSendFailed:
		return "send-failed"
	case OutcomePreviewed:
		return "previewed"
	default:
		return "unknown"
	}
}

// Result is the per-contact outcome of one send iteration.
type Result struct {
	// Contact is the contact this result belongs to.
	Contact Contact

	// Outcome classifies what happened.
	Outcome Outcome

	// Err is the transport error for OutcomeSendFailed, nil otherwise.
	Err error
}

// RunResult summarizes one run. It is an in-memory report only; nothing
// is persisted between runs.
type RunResult struct {
	// Results contains one entry per processed contact, in send order.
	Results []Result

	// Processed is the total number of contacts visited.
	Processed int

	// Sent, Previewed, Failed and Skipped partition Processed.
	Sent      int
	Previewed int
	Failed    int
	Skipped   int

	// Transport is the name of the transport used, empty for dry runs.
	Transport string
}

// Record appends a per-contact result and updates the counters.
func (r *RunResult) Record(contact Contact, outcome Outcome, err error) {
	r.Results = append(r.Results, Result{Contact: contact, Outcome: outcome, Err: err})
	r.Processed++
	switch outcome {
	case OutcomeSent:
		r.Sent++
	case OutcomePreviewed:
		r.Previewed++
	case OutcomeSendFailed:
		r.Failed++
	case OutcomeSkippedNoEmail:
		r.Skipped++
	}
}
