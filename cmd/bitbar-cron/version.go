// cmd/bitbar-cron/version.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aceteam-ai/cronwatch/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of bitbar-cron",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bitbar-cron version %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
