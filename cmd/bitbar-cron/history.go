// cmd/bitbar-cron/history.go
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aceteam-ai/cronwatch/internal/history"
	"github.com/aceteam-ai/cronwatch/internal/platform"
	"github.com/aceteam-ai/cronwatch/internal/ui"
)

var (
	historyLimit int
	historyDB    string
)

var historyCmd = &cobra.Command{
	Use:   "history [job-identifier]",
	Short: "Show recent runs recorded by cronjob-wrapper",
	Long: `Prints the most recent runs from the wrapper's local run history, newest
first. Give a job identifier to show only that job.

History is kept on the machine where the wrapper runs; remote hosts are not
queried.`,
	Example: `  bitbar-cron history
  bitbar-cron history backup --limit 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveHistoryDB()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no run history at %s", path)
		}

		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		var job string
		if len(args) == 1 {
			job = args[0]
		}
		entries, err := store.Recent(job, historyLimit)
		if err != nil {
			return err
		}
		log.Debug().Str("path", path).Int("entries", len(entries)).Msg("read run history")
		return writeHistory(cmd.OutOrStdout(), entries)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyDB, "history", "", "Run history database (default <data-dir>/history.db, or $CRONJOB_HISTORY)")
	rootCmd.AddCommand(historyCmd)
}

func resolveHistoryDB() (string, error) {
	if historyDB != "" {
		return historyDB, nil
	}
	if path := os.Getenv("CRONJOB_HISTORY"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(platform.DataDir(home), "history.db"), nil
}

func writeHistory(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Started", "Job", "Outcome", "Exit", "Duration", "Status")
	for _, e := range entries {
		outcome := e.Outcome
		if e.Failed() {
			outcome = badColor.Sprint(outcome)
		}
		exit := strconv.Itoa(e.ExitCode)
		if e.ExitCode < 0 {
			exit = "-"
		}
		table.Append([]string{
			humanize.Time(e.StartedAt),
			e.JobID,
			outcome,
			exit,
			(time.Duration(e.DurationMs) * time.Millisecond).String(),
			ui.Truncate(ui.SingleLine(e.Status), ui.MaxLabelWidth),
		})
	}
	return table.Render()
}
