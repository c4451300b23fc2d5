package cmd

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const defaultEnvFile = ".env"

// flexBool accepts the relaxed boolean forms commonly found in .env
// files: 1/true/yes/y/on (any casing) are true, everything else false.
type flexBool bool

// Decode implements envconfig.Decoder.
func (b *flexBool) Decode(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y", "on":
		*b = true
	default:
		*b = false
	}
	return nil
}

// relayEnv holds transport settings resolved from the environment.
type relayEnv struct {
	Host      string   `envconfig:"SMTP_HOST"`
	Port      int      `envconfig:"SMTP_PORT" default:"587"`
	Username  string   `envconfig:"SMTP_USERNAME"`
	Password  string   `envconfig:"SMTP_PASSWORD"`
	UseTLS    flexBool `envconfig:"SMTP_USE_TLS" default:"true"`
	UseSSL    flexBool `envconfig:"SMTP_USE_SSL" default:"false"`
	SkipTLS   flexBool `envconfig:"SMTP_TLS_SKIP_VERIFY" default:"false"`
	FromName  string   `envconfig:"SMTP_FROM_NAME"`
	FromEmail string   `envconfig:"SMTP_FROM_EMAIL"`

	AWSRegion     string `envconfig:"AWS_REGION"`
	SendGridKey   string `envconfig:"SENDGRID_API_KEY"`
	MailgunKey    string `envconfig:"MAILGUN_API_KEY"`
	MailgunDomain string `envconfig:"MAILGUN_DOMAIN"`
}

// loadRelayEnv loads .env (or an explicit env file) and resolves the
// relay settings from the environment. A missing env file is not an
// error; the environment itself may carry everything needed.
func loadRelayEnv(envFile string) (*relayEnv, error) {
	if envFile != "" {
		// nolint:errcheck // an unreadable explicit file still falls back to the environment
		_ = godotenv.Load(envFile)
	} else {
		// nolint:errcheck // .env file is optional, failure is acceptable
		_ = godotenv.Load(defaultEnvFile)
	}

	var env relayEnv
	if err := envconfig.Process("", &env); err != nil {
		return nil, errors.Wrap(err, "failed to envconfig.Process")
	}

	return &env, nil
}

// security maps the SMTP_USE_SSL / SMTP_USE_TLS pair to a security mode.
// SSL wins: it means encrypted from the first byte.
func (e *relayEnv) security() string {
	if e.UseSSL {
		return "implicit_tls"
	}
	if e.UseTLS {
		return "starttls"
	}
	return "none"
}
