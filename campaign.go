package campaign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lattiq/campaign/internal/core"
	"github.com/lattiq/campaign/internal/transports/mailgun"
	"github.com/lattiq/campaign/internal/transports/sendgrid"
	"github.com/lattiq/campaign/internal/transports/ses"
	"github.com/lattiq/campaign/internal/transports/smtp"
)

// Type aliases to re-export core types for the public API.
// This allows users to access types like campaign.Contact instead of
// core.Contact, maintaining a clean public interface while keeping
// implementation details internal.
type (
	Transport         = core.Transport
	TransportSettings = core.TransportSettings
	Contact           = core.Contact
	Address           = core.Address
	Message           = core.Message
	Outcome           = core.Outcome
	Result            = core.Result
	RunResult         = core.RunResult
)

// Outcome constants
const (
	OutcomeSent           = core.OutcomeSent
	OutcomeSkippedNoEmail = core.OutcomeSkippedNoEmail
	OutcomeSendFailed     = core.OutcomeSendFailed
	OutcomePreviewed      = core.OutcomePreviewed
)

// NewMessage assembles a transport-ready message.
var NewMessage = core.NewMessage

// Runner drives one bulk-send run: it iterates contacts in load order,
// renders subject and body per contact, and dispatches (or previews)
// each message sequentially over a single shared transport connection.
type Runner struct {
	config    Config
	transport Transport
	logger    *log.Logger
	preview   io.Writer
	pacer     *pacer
	now       func() time.Time
	tracer    trace.Tracer
}

// New creates a new campaign runner with the given configuration.
// The configuration is validated up front: for non-dry-run configurations
// a missing relay or sender setting is a *ConfigError, reported before
// any connection attempt.
func New(config Config, opts ...Option) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	runner := &Runner{
		config:  config,
		logger:  log.Default(),
		preview: os.Stdout,
		now:     time.Now,
		tracer:  otel.Tracer("github.com/lattiq/campaign"),
	}

	for _, opt := range opts {
		opt(runner)
	}

	runner.pacer = newPacer(config.Delay)

	// Dry runs never acquire a connection, so no transport is built.
	if runner.transport == nil && !config.DryRun {
		transport, err := createTransport(config.Transport.Type, config.Transport.Settings)
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
		runner.transport = transport
	}

	return runner, nil
}

// Run processes contacts in load order, applying the configured row limit
// and inter-send delay. A failed send never aborts the run; only a
// connection-establishment failure is fatal. The returned RunResult is an
// in-memory summary; per-contact outcomes are also surfaced on the logger.
func (r *Runner) Run(ctx context.Context, contacts []Contact, subject, body string) (*RunResult, error) {
	ctx, span := r.tracer.Start(ctx, "campaign.Runner.Run")
	defer span.End()

	span.SetAttributes(
		attribute.Int("campaign.contacts", len(contacts)),
		attribute.Bool("campaign.dry_run", r.config.DryRun),
		attribute.Int("campaign.limit", r.config.Limit),
	)

	result := &RunResult{}

	if !r.config.DryRun {
		result.Transport = r.transport.Name()
		span.SetAttributes(attribute.String("campaign.transport", r.transport.Name()))

		if err := r.transport.Connect(ctx); err != nil {
			var connErr *ConnectionError
			if !errors.As(err, &connErr) {
				connErr = core.NewConnectionError(r.transport.Name(), "connect failed", err)
			}
			span.RecordError(connErr)
			span.SetStatus(codes.Error, "connection failed")
			return nil, connErr
		}

		// Release exactly once, on every exit path. A close failure is
		// logged and swallowed; the run outcome is unaffected.
		defer func() {
			if err := r.transport.Close(); err != nil {
				r.logger.Debug("transport close failed", "transport", r.transport.Name(), "err", err)
			}
		}()
	}

	for i, contact := range contacts {
		stop := r.process(ctx, contact, subject, body, result)
		if stop {
			break
		}

		// Pause between sends only: never in dry-run mode and never
		// after the last contact actually processed.
		if !r.config.DryRun && i < len(contacts)-1 {
			if err := r.pacer.wait(ctx); err != nil {
				span.SetStatus(codes.Error, "run cancelled")
				return result, err
			}
		}
	}

	span.SetAttributes(
		attribute.Int("campaign.processed", result.Processed),
		attribute.Int("campaign.sent", result.Sent),
		attribute.Int("campaign.failed", result.Failed),
		attribute.Int("campaign.skipped", result.Skipped),
		attribute.Int("campaign.previewed", result.Previewed),
	)
	span.SetStatus(codes.Ok, "run completed")

	return result, nil
}

// process handles a single contact and reports whether iteration must
// stop because the row limit has been reached.
func (r *Runner) process(ctx context.Context, contact Contact, subject, body string, result *RunResult) bool {
	to := contact.Email()
	if to == "" {
		r.logger.Warn("skipping contact without email", "row", map[string]string(contact))
		result.Record(contact, OutcomeSkippedNoEmail, nil)
		return r.limitReached(result)
	}

	renderCtx := MergeContext(contact, r.config.Sender.Name, r.config.Sender.Email)
	now := r.now()
	renderedSubject := RenderAt(subject, renderCtx, now)
	renderedBody := RenderAt(body, renderCtx, now)

	if r.config.DryRun {
		fmt.Fprintf(r.preview, "\n--- DRY RUN ---\nTo: %s\nSubject: %s\n\n%s\n", to, renderedSubject, renderedBody)
		result.Record(contact, OutcomePreviewed, nil)
		return r.limitReached(result)
	}

	ctx, span := r.tracer.Start(ctx, "campaign.Runner.send",
		trace.WithAttributes(
			attribute.String("campaign.to", to),
			attribute.String("campaign.transport", r.transport.Name()),
		),
	)
	defer span.End()

	msg := NewMessage(r.config.Sender.Name, r.config.Sender.Email, to, renderedSubject, renderedBody)

	if err := r.transport.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		r.logger.Error("failed to send", "to", to, "err", err)
		result.Record(contact, OutcomeSendFailed, err)
		return r.limitReached(result)
	}

	span.SetStatus(codes.Ok, "sent")
	r.logger.Info("sent", "to", to)
	result.Record(contact, OutcomeSent, nil)
	return r.limitReached(result)
}

// limitReached reports whether the configured row limit has been hit.
// Every visited contact counts toward the limit, including skips.
func (r *Runner) limitReached(result *RunResult) bool {
	if r.config.Limit > 0 && result.Processed >= r.config.Limit {
		r.logger.Info("row limit reached", "limit", r.config.Limit)
		return true
	}
	return false
}

// createTransport creates a transport instance based on type and settings.
func createTransport(transportType TransportType, settings TransportSettings) (Transport, error) {
	// HTTP-backed transports identify the tool on the wire.
	if settings.Get("user_agent") == "" {
		settings.Set("user_agent", GetVersionInfo().UserAgent())
	}

	switch transportType {
	case TransportSMTP:
		return smtp.NewTransport(settings)
	case TransportAWSSES:
		return ses.NewTransport(settings)
	case TransportSendGrid:
		return sendgrid.NewTransport(settings)
	case TransportMailgun:
		return mailgun.NewTransport(settings)
	default:
		return nil, fmt.Errorf("unsupported transport type: %s", transportType)
	}
}
