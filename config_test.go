package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattiq/campaign/internal/core"
)

func validSMTPConfig() Config {
	config := DefaultConfig()
	config.Sender = SenderConfig{Name: "Maya", Email: "maya@example.com"}
	config.Transport.Settings = TransportSettings{
		"host": "smtp.example.com",
		"port": "587",
	}
	return config
}

func TestValidateAcceptsCompleteSMTPConfig(t *testing.T) {
	config := validSMTPConfig()

	assert.NoError(t, config.Validate())
}

func TestValidateDryRunRequiresNoRelay(t *testing.T) {
	config := DefaultConfig()
	config.DryRun = true

	// No sender, no host: still fine for a dry run.
	assert.NoError(t, config.Validate())
}

func TestValidateMissingHost(t *testing.T) {
	config := validSMTPConfig()
	config.Transport.Settings = TransportSettings{}

	err := config.Validate()

	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "transport.host", cfgErr.Field)
}

func TestValidateMissingSender(t *testing.T) {
	config := validSMTPConfig()
	config.Sender.Email = ""

	err := config.Validate()

	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "sender.email", cfgErr.Field)
}

func TestValidateUnsupportedTransport(t *testing.T) {
	config := validSMTPConfig()
	config.Transport.Type = TransportType("carrier-pigeon")

	err := config.Validate()

	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "transport.type", cfgErr.Field)
}

func TestValidateNegativeLimitAndDelay(t *testing.T) {
	config := validSMTPConfig()
	config.Limit = -1
	assert.Error(t, config.Validate())

	config = validSMTPConfig()
	config.Delay = -time.Second
	assert.Error(t, config.Validate())
}

func TestValidateAPITransports(t *testing.T) {
	tests := []struct {
		name     string
		typ      TransportType
		settings TransportSettings
		wantErr  bool
	}{
		{"ses ok", TransportAWSSES, TransportSettings{"region": "us-east-1"}, false},
		{"ses missing region", TransportAWSSES, TransportSettings{}, true},
		{"sendgrid ok", TransportSendGrid, TransportSettings{"api_key": "SG.x"}, false},
		{"sendgrid missing key", TransportSendGrid, TransportSettings{}, true},
		{"mailgun ok", TransportMailgun, TransportSettings{"api_key": "key", "domain": "mg.example.com"}, false},
		{"mailgun missing domain", TransportMailgun, TransportSettings{"api_key": "key"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validSMTPConfig()
			config.Transport.Type = tt.typ
			config.Transport.Settings = tt.settings

			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransportTypeValid(t *testing.T) {
	assert.True(t, TransportSMTP.Valid())
	assert.True(t, TransportAWSSES.Valid())
	assert.True(t, TransportSendGrid.Valid())
	assert.True(t, TransportMailgun.Valid())
	assert.False(t, TransportType("smoke-signals").Valid())
}
