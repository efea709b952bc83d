// cmd/cronjob-wrapper/main.go
/*
Copyright © 2025 AceTeam <dev@aceteam.ai>
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aceteam-ai/cronwatch/internal/history"
	"github.com/aceteam-ai/cronwatch/internal/logging"
	"github.com/aceteam-ai/cronwatch/internal/platform"
	"github.com/aceteam-ai/cronwatch/internal/record"
	"github.com/aceteam-ai/cronwatch/internal/version"
	"github.com/aceteam-ai/cronwatch/internal/wrapper"
)

const (
	envErrorsDir = "CRONJOB_ERRORS_DIR"
	envHistory   = "CRONJOB_HISTORY"
)

var (
	noDiskCheck bool
	errorsDir   string
	historyPath string
	debugMode   bool
)

var badColor = color.New(color.FgRed)

var rootCmd = &cobra.Command{
	Use:   "cronjob-wrapper [flags] <job-identifier> <command> [command-args...]",
	Short: "Run a scheduled job and record its failure",
	Long: `Runs a command on behalf of cron. When the command fails, a failure record
named cronjob-<job-identifier>.log is written to the errors directory; when it
succeeds, any existing record for the job is removed.

The wrapper exits 0 whenever the job's result was recorded, so cron never mails
about the job itself. A non-zero exit means the wrapper could not do its own work.

Flags must come before the job identifier. Everything after the command is
passed to it untouched.`,
	Example: `  # In a crontab
  0 3 * * * cronjob-wrapper backup restic backup /srv

  # Skip the free-space guard for a cleanup job that frees space
  */30 * * * * cronjob-wrapper --no-diskspace-check prune /usr/local/bin/prune-logs -v`,
	Version:       version.Version,
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	flags.BoolVar(&noDiskCheck, "no-diskspace-check", false, "Run the job even when the root filesystem is low on space or inodes")
	flags.StringVar(&errorsDir, "errors-dir", "", "Directory for failure records (default is the platform errors directory, or $"+envErrorsDir+")")
	flags.StringVar(&historyPath, "history", "", "Run history database; empty disables (default <data-dir>/history.db, or $"+envHistory+")")
	flags.BoolVar(&debugMode, "debug", false, "Enable debug output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		badColor.Fprintf(os.Stderr, "cronjob-wrapper: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logDir, _ := platform.LogDir()
	log, closer := logging.New(logging.Options{Component: "wrapper", Debug: debugMode, LogDir: logDir})
	defer closer.Close()

	if debugMode {
		log.Debug().Str("command", commandLine(cmd, args)).Msg("invoked")
	}

	dir, err := resolveErrorsDir(cmd.Flags())
	if err != nil {
		return err
	}

	w := wrapper.New(record.NewDirStore(dir), log)
	w.Stdin = os.Stdin

	if path := resolveHistoryPath(cmd.Flags()); path != "" {
		hist, err := history.Open(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("run history disabled")
		} else {
			defer hist.Close()
			w.History = hist
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	job := wrapper.Job{
		ID:            args[0],
		Command:       args[1],
		Args:          args[2:],
		SkipDiskCheck: noDiskCheck,
	}
	log.Debug().Str("job", job.ID).Str("errors_dir", dir).Msg("running job")
	return w.Execute(ctx, job)
}

// resolveErrorsDir picks the errors directory: flag, then environment, then
// the platform default.
func resolveErrorsDir(flags *pflag.FlagSet) (string, error) {
	if flags.Changed("errors-dir") && errorsDir != "" {
		return errorsDir, nil
	}
	if dir := os.Getenv(envErrorsDir); dir != "" {
		return dir, nil
	}
	paths, err := platform.DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ErrorsDir, nil
}

// resolveHistoryPath returns "" when history is disabled. An explicitly empty
// flag or environment variable disables it.
func resolveHistoryPath(flags *pflag.FlagSet) string {
	if flags.Changed("history") {
		return historyPath
	}
	if path, ok := os.LookupEnv(envHistory); ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(platform.DataDir(home), "history.db")
}

// commandLine reconstructs the invocation for debug logs.
func commandLine(cmd *cobra.Command, args []string) string {
	full := cmd.Name()
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == "debug" {
			return
		}
		if f.Value.Type() == "bool" {
			full += " --" + f.Name
		} else {
			full += " --" + f.Name + "=" + f.Value.String()
		}
	})
	if len(args) > 0 {
		full += " " + strings.Join(args, " ")
	}
	return full
}
