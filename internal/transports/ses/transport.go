// Package ses implements the core.Transport interface over AWS SES.
package ses

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/lattiq/campaign/internal/core"
)

// Transport implements the core.Transport interface for AWS SES.
// Being API-backed, it has no persistent connection: Connect validates
// the client configuration and Close is a no-op.
type Transport struct {
	client *ses.Client
	config core.TransportSettings
}

// NewTransport creates a new AWS SES transport.
func NewTransport(settings core.TransportSettings) (core.Transport, error) {
	region := settings.Get("region")
	if region == "" {
		return nil, core.NewConfigError("region", "AWS region is required")
	}

	return &Transport{config: settings}, nil
}

// Connect loads the AWS configuration and builds the SES client. A
// credential or configuration failure here is fatal to the run.
func (t *Transport) Connect(ctx context.Context) error {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(t.config.Get("region")),
	)
	if err != nil {
		return core.NewConnectionError(t.Name(), "failed to load AWS config", err)
	}

	// Override with explicit credentials if provided.
	if accessKey := t.config.Get("access_key"); accessKey != "" {
		secretKey := t.config.Get("secret_key")
		if secretKey == "" {
			return core.NewConfigError("secret_key", "secret key is required when access key is provided")
		}

		sessionToken := t.config.Get("session_token")
		cfg.Credentials = aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     accessKey,
				SecretAccessKey: secretKey,
				SessionToken:    sessionToken,
			}, nil
		})
	}

	t.client = ses.NewFromConfig(cfg)
	return nil
}

// Send delivers one message via the SES SendEmail API.
func (t *Transport) Send(ctx context.Context, msg *core.Message) error {
	input := &ses.SendEmailInput{
		Source: aws.String(msg.From.String()),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(msg.Subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(msg.Body),
				},
			},
		},
	}

	if configSet := t.config.Get("configuration_set"); configSet != "" {
		input.ConfigurationSetName = aws.String(configSet)
	}

	if _, err := t.client.SendEmail(ctx, input); err != nil {
		return core.NewTransportError(t.Name(), msg.To.Email, err)
	}

	return nil
}

// Close is a no-op; the SES client holds no persistent connection.
func (t *Transport) Close() error {
	return nil
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "aws_ses"
}
