package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lattiq/campaign"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("campaign -", campaign.GetVersionInfo().String())
	},
}
