// cmd/bitbar-cron/main.go
/*
Copyright © 2025 AceTeam <dev@aceteam.ai>
*/
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		badColor.Fprintf(os.Stderr, "bitbar-cron: %v\n", err)
		os.Exit(1)
	}
}
