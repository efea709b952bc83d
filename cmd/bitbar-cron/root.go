// cmd/bitbar-cron/root.go
package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aceteam-ai/cronwatch/internal/config"
	"github.com/aceteam-ai/cronwatch/internal/logging"
	"github.com/aceteam-ai/cronwatch/internal/menu"
	"github.com/aceteam-ai/cronwatch/internal/platform"
	"github.com/aceteam-ai/cronwatch/internal/record"
	"github.com/aceteam-ai/cronwatch/internal/scan"
	"github.com/aceteam-ai/cronwatch/internal/ui"
	"github.com/aceteam-ai/cronwatch/internal/version"
)

var (
	cfgFile         string
	outputFormat    string
	errorsDir       string
	remoteErrorsDir string
	debugMode       bool
)

var badColor = color.New(color.FgRed)

var (
	log       = zerolog.Nop()
	logCloser io.Closer
)

// runner executes ssh listings; tests replace it.
var runner scan.Runner = scan.ExecRunner{}

var rootCmd = &cobra.Command{
	Use:   "bitbar-cron",
	Short: "Menu-bar summary of failing cron jobs",
	Long: `Lists the failure records left by cronjob-wrapper on this machine and on the
remote hosts named in bitbar/plugins/cron.json, and prints them as a BitBar,
xbar or SwiftBar plugin menu.

Nothing is printed while every job is healthy. Errors replace the whole menu.

Config file (optional, searched in $XDG_CONFIG_HOME then $XDG_CONFIG_DIRS):
  {"hosts": ["db1", "web1"], "remote_errors_dir": ".local/share/syncbin", "concurrency": 4}`,
	Example: `  # As a plugin, installed as ~/Library/Application Support/xbar/plugins/cron.5m
  bitbar-cron

  # In a terminal
  bitbar-cron --format text
  bitbar-cron --format table

  # For the node_exporter textfile collector
  bitbar-cron --format prometheus > /var/lib/node_exporter/cron.prom`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logDir, _ := platform.LogDir()
		log, logCloser = logging.New(logging.Options{
			Component: "reporter",
			Debug:     debugMode,
			LogDir:    logDir,
			Output:    cmd.ErrOrStderr(),
		})
		if debugMode {
			log.Debug().Str("command", commandLine(cmd, args)).Msg("invoked")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := menu.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var progress *ui.Spinner
		if interactive(format, cmd.ErrOrStderr()) {
			progress = ui.NewSpinner(cmd.ErrOrStderr())
		}
		report := buildReport(cmd.Context(), log, progress)
		if report.Failed() {
			log.Debug().Strs("error", report.Error).Msg("scan failed")
		}
		return menu.Render(out, format, report, menu.TextOptions{Links: logging.IsTerminal(out)})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the first bitbar/plugins/cron.json in the XDG config dirs)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug output")
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", string(menu.FormatAuto), "Output format: auto, bitbar, swiftbar, text, table, json, yaml, prometheus")
	rootCmd.Flags().StringVar(&errorsDir, "errors-dir", "", "Local errors directory (default is the platform errors directory)")
	rootCmd.Flags().StringVar(&remoteErrorsDir, "remote-errors-dir", "", "Errors directory on remote hosts (default "+platform.RemoteErrorsDir+")")
}

// buildReport scans every host. Any failure becomes an error report so the
// menu bar shows what went wrong instead of nothing.
func buildReport(ctx context.Context, log zerolog.Logger, progress *ui.Spinner) *menu.Report {
	paths, err := platform.DefaultPaths()
	if err != nil && errorsDir == "" {
		return menu.FromError(err)
	}
	if errorsDir != "" {
		paths.ErrorsDir = errorsDir
	}

	var cfg *config.Config
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.Load(paths.ConfigDirs)
	}
	if err != nil {
		return menu.FromError(err)
	}
	log.Debug().Str("config", cfg.Path).Strs("hosts", cfg.Hosts).Msg("loaded config")

	remoteDir := platform.RemoteErrorsDir
	switch {
	case remoteErrorsDir != "":
		remoteDir = remoteErrorsDir
	case cfg.RemoteErrorsDir != "":
		remoteDir = cfg.RemoteErrorsDir
	}

	store := record.NewDirStore(paths.ErrorsDir)
	sources := scan.Sources(store, cfg.Hosts, remoteDir, runner)
	if progress != nil {
		var mu sync.Mutex
		finished := 0
		sources = scan.WithProgress(sources, func(host string, err error) {
			mu.Lock()
			defer mu.Unlock()
			finished++
			progress.Detail("%s done (%d/%d)", host, finished, len(sources))
		})
		progress.Start(fmt.Sprintf("Scanning %d hosts", len(sources)))
	}
	groups, err := scan.Collect(ctx, log, sources, cfg.Concurrency)
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		return menu.FromError(err)
	}

	return menu.Build(groups, menu.Locations{
		LocalPath: store.Path,
		Opener:    platform.OpenCommand(runtime.GOOS),
		RemoteDir: remoteDir,
	})
}

// interactive reports whether a progress spinner belongs on w.
func interactive(format menu.Format, w io.Writer) bool {
	f := format.Resolve()
	return (f == menu.FormatText || f == menu.FormatTable) && logging.IsTerminal(w)
}

func init() {
	cobra.OnFinalize(func() {
		if logCloser != nil {
			logCloser.Close()
			logCloser = nil
		}
	})
}

// commandLine reconstructs the invocation for debug logs.
func commandLine(cmd *cobra.Command, args []string) string {
	full := cmd.CommandPath()
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
