package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattiq/campaign"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, ExitCode(nil))
	assert.Equal(t, exitConfig, ExitCode(campaign.NewConfigError("host", "required")))
	assert.Equal(t, exitFatal, ExitCode(errors.New("anything else")))
	assert.Equal(t, exitFatal, ExitCode(campaign.NewLoadError("contacts.csv", "cannot open", nil)))
	assert.Equal(t, exitFatal, ExitCode(campaign.NewConnectionError("smtp", "dial failed", nil)))
}

func TestFlexBoolDecode(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", "yes", "Y", "on", " on "}
	for _, v := range truthy {
		var b flexBool
		require.NoError(t, b.Decode(v))
		assert.True(t, bool(b), "value %q", v)
	}

	falsy := []string{"0", "false", "no", "off", "", "banana"}
	for _, v := range falsy {
		var b flexBool
		require.NoError(t, b.Decode(v))
		assert.False(t, bool(b), "value %q", v)
	}
}

func TestLoadRelayEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USERNAME", "maya")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("SMTP_USE_TLS", "yes")
	t.Setenv("SMTP_USE_SSL", "off")

	env, err := loadRelayEnv("")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", env.Host)
	assert.Equal(t, 2525, env.Port)
	assert.Equal(t, "maya", env.Username)
	assert.Equal(t, "starttls", env.security())
}

func TestRelayEnvSecurityModes(t *testing.T) {
	assert.Equal(t, "implicit_tls", (&relayEnv{UseSSL: true, UseTLS: true}).security())
	assert.Equal(t, "starttls", (&relayEnv{UseTLS: true}).security())
	assert.Equal(t, "none", (&relayEnv{}).security())
}

func TestLoadRelayEnvFromFile(t *testing.T) {
	// godotenv never overrides variables already present in the
	// environment, so make sure this one is truly unset.
	t.Setenv("SMTP_HOST", "")
	require.NoError(t, os.Unsetenv("SMTP_HOST"))

	path := filepath.Join(t.TempDir(), "custom.env")
	require.NoError(t, os.WriteFile(path, []byte("SMTP_HOST=relay.example.com\n"), 0o600))

	env, err := loadRelayEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "relay.example.com", env.Host)
}

func TestLoadCampaignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
csv: contacts.csv
template: body.txt
subject: "Hi {{name}}"
from_name: Maya
rate_limit: 1.5
limit: 10
dry_run: true
`), 0o600))

	cf, err := loadCampaignFile(path)
	require.NoError(t, err)

	assert.Equal(t, "contacts.csv", cf.CSV)
	assert.Equal(t, "body.txt", cf.Template)
	assert.Equal(t, "Hi {{name}}", cf.Subject)
	assert.Equal(t, "Maya", cf.FromName)
	assert.Equal(t, 1.5, cf.RateLimit)
	assert.Equal(t, 10, cf.Limit)
	assert.True(t, cf.DryRun)
}

func TestLoadCampaignFileMissing(t *testing.T) {
	_, err := loadCampaignFile(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestResolveConfigSenderFallback(t *testing.T) {
	fromName, fromEmail = "", ""
	defer func() { fromName, fromEmail = "", "" }()

	env := &relayEnv{Username: "maya@example.com", FromName: "Maya"}
	config := resolveConfig(env)
	assert.Equal(t, "Maya", config.Sender.Name)
	assert.Equal(t, "maya@example.com", config.Sender.Email)

	env.FromEmail = "sender@example.com"
	config = resolveConfig(env)
	assert.Equal(t, "sender@example.com", config.Sender.Email)

	fromEmail = "flag@example.com"
	config = resolveConfig(env)
	assert.Equal(t, "flag@example.com", config.Sender.Email)
}
