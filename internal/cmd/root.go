/*
Package cmd provides the CLI commands for the campaign mailer.
*/
package cmd

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lattiq/campaign"
)

var (
	verbose bool
	debug   bool
)

// Exit codes. Missing relay or sender configuration for a non-dry-run
// invocation is distinguished so callers can tell misconfiguration from
// runtime failures.
const (
	exitOK     = 0
	exitFatal  = 1
	exitConfig = 2
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Send personalized bulk emails from a CSV contact list",
	Long: `Campaign sends personalized bulk emails: it reads a CSV contact list,
substitutes {{placeholders}} into a subject and body template, and sends
each message sequentially over an authenticated mail transport.

Example:
  campaign send --csv contacts.csv --template body.txt --subject "Hi {{name}}"
  campaign send --csv contacts.csv --template body.txt --subject "Hi" --dry-run
  campaign send --csv contacts.csv --template body.txt --subject "Hi" --rate-limit 1.5 --limit 10`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an error from Execute to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var cfgErr *campaign.ConfigError
	if errors.As(err, &cfgErr) {
		return exitConfig
	}
	return exitFatal
}

func init() {
	cobra.OnInitialize(initLog)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLog() {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else if verbose {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}
