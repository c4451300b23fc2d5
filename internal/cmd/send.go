package cmd

import (
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lattiq/campaign"
)

var (
	cfgFile   string
	csvPath   string
	tmplPath  string
	subject   string
	fromName  string
	fromEmail string
	envFile   string
	transport string
	rateLimit float64
	rowLimit  int
	dryRun    bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Render and send one message per contact",
	Long: `Send reads a CSV contact list with an 'email' column, renders the
subject and body template per contact ({{placeholders}} are replaced from
the contact's columns plus the built-ins today, from_name and from_email),
and sends each message sequentially over the configured transport.

Relay settings come from the environment (SMTP_HOST, SMTP_PORT,
SMTP_USERNAME, SMTP_PASSWORD, SMTP_USE_TLS, SMTP_USE_SSL), with .env
autoloaded. With --dry-run no connection is opened and each rendered
message is printed instead.`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "optional YAML campaign file (flags override)")
	sendCmd.Flags().StringVar(&csvPath, "csv", "", "path to contacts CSV with an 'email' column")
	sendCmd.Flags().StringVar(&tmplPath, "template", "", "path to email body template file")
	sendCmd.Flags().StringVar(&subject, "subject", "", "email subject (supports {{placeholders}})")
	sendCmd.Flags().StringVar(&fromName, "from-name", "", "From display name (default SMTP_FROM_NAME)")
	sendCmd.Flags().StringVar(&fromEmail, "from-email", "", "From address (default SMTP_FROM_EMAIL, then SMTP_USERNAME)")
	sendCmd.Flags().StringVar(&envFile, "env-file", "", "optional path to a .env file")
	sendCmd.Flags().StringVar(&transport, "transport", "smtp", "mail transport: smtp, aws_ses, sendgrid or mailgun")
	sendCmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "seconds to pause between sends")
	sendCmd.Flags().IntVar(&rowLimit, "limit", 0, "limit number of rows to process (0 = all)")
	sendCmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not send, print what would be sent")
}

func runSend(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		cf, err := loadCampaignFile(cfgFile)
		if err != nil {
			return err
		}
		applyCampaignFile(cmd, cf)
	}

	if csvPath == "" {
		return campaign.NewConfigError("csv", "a contacts CSV is required (--csv)")
	}
	if tmplPath == "" {
		return campaign.NewConfigError("template", "a body template is required (--template)")
	}
	if subject == "" {
		return campaign.NewConfigError("subject", "a subject is required (--subject)")
	}

	env, err := loadRelayEnv(envFile)
	if err != nil {
		return err
	}

	config := resolveConfig(env)

	// New validates the configuration before anything is loaded: a
	// non-dry-run invocation with no relay settings fails here, before
	// contacts are read and before any connection attempt.
	runner, err := campaign.New(config, campaign.WithLogger(log.Default()))
	if err != nil {
		return err
	}

	body, err := campaign.LoadTemplate(tmplPath)
	if err != nil {
		return err
	}

	contacts, err := campaign.LoadContactsFile(csvPath)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		log.Warn("no contacts found in CSV", "csv", csvPath)
		return nil
	}

	result, err := runner.Run(cmd.Context(), contacts, subject, body)
	if err != nil {
		return err
	}

	log.Info("run completed",
		"processed", result.Processed,
		"sent", result.Sent,
		"previewed", result.Previewed,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return nil
}

// applyCampaignFile fills in values the user did not set via flags.
func applyCampaignFile(cmd *cobra.Command, cf *campaignFile) {
	flags := cmd.Flags()

	if !flags.Changed("csv") && cf.CSV != "" {
		csvPath = cf.CSV
	}
	if !flags.Changed("template") && cf.Template != "" {
		tmplPath = cf.Template
	}
	if !flags.Changed("subject") && cf.Subject != "" {
		subject = cf.Subject
	}
	if !flags.Changed("from-name") && cf.FromName != "" {
		fromName = cf.FromName
	}
	if !flags.Changed("from-email") && cf.FromEmail != "" {
		fromEmail = cf.FromEmail
	}
	if !flags.Changed("transport") && cf.Transport != "" {
		transport = cf.Transport
	}
	if !flags.Changed("rate-limit") && cf.RateLimit > 0 {
		rateLimit = cf.RateLimit
	}
	if !flags.Changed("limit") && cf.Limit > 0 {
		rowLimit = cf.Limit
	}
	if !flags.Changed("dry-run") && cf.DryRun {
		dryRun = true
	}
}

// resolveConfig merges flags and environment into the immutable run
// configuration. The sender address falls back from --from-email to
// SMTP_FROM_EMAIL, then SMTP_USERNAME.
func resolveConfig(env *relayEnv) campaign.Config {
	name := fromName
	if name == "" {
		name = env.FromName
	}

	email := fromEmail
	if email == "" {
		email = env.FromEmail
	}
	if email == "" {
		email = env.Username
	}

	config := campaign.DefaultConfig()
	config.Sender = campaign.SenderConfig{Name: name, Email: email}
	config.DryRun = dryRun
	config.Limit = rowLimit
	config.Delay = time.Duration(rateLimit * float64(time.Second))
	config.Transport.Type = campaign.TransportType(transport)
	config.Transport.Settings = transportSettings(env)

	return config
}

func transportSettings(env *relayEnv) campaign.TransportSettings {
	switch campaign.TransportType(transport) {
	case campaign.TransportAWSSES:
		return campaign.TransportSettings{
			"region": env.AWSRegion,
		}
	case campaign.TransportSendGrid:
		return campaign.TransportSettings{
			"api_key": env.SendGridKey,
		}
	case campaign.TransportMailgun:
		return campaign.TransportSettings{
			"api_key": env.MailgunKey,
			"domain":  env.MailgunDomain,
		}
	default:
		settings := campaign.TransportSettings{
			"host":     env.Host,
			"port":     strconv.Itoa(env.Port),
			"username": env.Username,
			"password": env.Password,
			"security": env.security(),
		}
		if env.SkipTLS {
			settings.Set("tls_skip_verify", "true")
		}
		return settings
	}
}
