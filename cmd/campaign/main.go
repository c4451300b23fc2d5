/*
Package main provides the CLI entry point for the campaign mailer.
*/
package main

import (
	"os"

	"github.com/lattiq/campaign/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
