// Package wrapper runs one scheduled job and turns its result into a failure
// record. Job failures never become errors here: they are written to the
// record store so the scheduler only ever sees the wrapper succeed. Errors
// returned from this package are the wrapper's own (record I/O, bad input).
package wrapper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aceteam-ai/cronwatch/internal/diskspace"
	"github.com/aceteam-ai/cronwatch/internal/history"
	"github.com/aceteam-ai/cronwatch/internal/record"
)

// Job is one invocation request.
type Job struct {
	ID            string
	Command       string
	Args          []string
	SkipDiskCheck bool
}

// Argv returns the command line as run.
func (j Job) Argv() []string {
	return append([]string{j.Command}, j.Args...)
}

// HistoryRecorder receives one entry per completed invocation.
type HistoryRecorder interface {
	Insert(history.Entry) error
}

// Wrapper executes jobs against a record store.
type Wrapper struct {
	Store record.Store
	// DiskCheck reports on the filesystem guarded before each run.
	DiskCheck func() (diskspace.Report, error)
	// History is optional; failures to record history are logged at debug
	// level only, since cron mails anything written to stderr.
	History HistoryRecorder
	Log     zerolog.Logger
	// Stdin is handed to the child process.
	Stdin    io.Reader
	Hostname string

	Now      func() time.Time
	NewRunID func() string
}

// New returns a Wrapper guarding the root filesystem.
func New(store record.Store, log zerolog.Logger) *Wrapper {
	hostname, _ := os.Hostname()
	return &Wrapper{
		Store:     store,
		DiskCheck: func() (diskspace.Report, error) { return diskspace.Check("/") },
		Log:       log,
		Hostname:  hostname,
		Now:       time.Now,
		NewRunID:  uuid.NewString,
	}
}

// Execute runs the job and records its outcome. The returned error is non-nil
// only for wrapper-internal failures.
func (w *Wrapper) Execute(ctx context.Context, job Job) error {
	if err := record.ValidateID(job.ID); err != nil {
		return err
	}
	runID := w.NewRunID()
	log := w.Log.With().Str("job", job.ID).Str("run", runID).Logger()

	outcome, err := w.Run(ctx, job)
	if err != nil {
		return err
	}
	log.Debug().Str("outcome", fmt.Sprintf("%T", outcome)).Msg("job finished")

	if err := w.Apply(job, runID, outcome); err != nil {
		return err
	}

	if w.History != nil {
		if err := w.History.Insert(historyEntry(job, runID, outcome)); err != nil {
			log.Debug().Err(err).Msg("failed to record run history")
		}
	}
	return nil
}

// Run performs the disk guard and the command, returning which outcome occurred.
func (w *Wrapper) Run(ctx context.Context, job Job) (Outcome, error) {
	if !job.SkipDiskCheck {
		report, err := w.DiskCheck()
		if err != nil {
			return nil, err
		}
		if report.Low() {
			w.Log.Debug().Strs("reasons", report.Reasons()).Msg("disk space guard tripped, not running job")
			return DiskSpaceLow{Report: report, At: w.Now()}, nil
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, job.Command, job.Args...)
	cmd.Stdin = w.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := w.Now()
	if err := cmd.Start(); err != nil {
		return LaunchFailed{Err: err, Started: started, At: w.Now()}, nil
	}
	w.Log.Debug().Int("pid", cmd.Process.Pid).Strs("argv", job.Argv()).Msg("job started")

	err := cmd.Wait()
	finished := w.Now()
	if err == nil {
		return Succeeded{Started: started, Finished: finished}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ExitFailure{
			ExitCode: exitErr.ExitCode(),
			Status:   exitErr.ProcessState.String(),
			Stdout:   append([]byte{}, stdout.Bytes()...),
			Stderr:   append([]byte{}, stderr.Bytes()...),
			Started:  started,
			Finished: finished,
		}, nil
	}
	return nil, fmt.Errorf("wait for %s: %w", job.Command, err)
}

// Apply writes or clears the failure record for job according to outcome.
func (w *Wrapper) Apply(job Job, runID string, outcome Outcome) error {
	rec := &record.Record{
		JobID:   job.ID,
		RunID:   runID,
		Host:    w.Hostname,
		Command: job.Argv(),
	}

	switch o := outcome.(type) {
	case Succeeded:
		if err := w.Store.Delete(job.ID); err != nil {
			return fmt.Errorf("clear failure record for %s: %w", job.ID, err)
		}
		return nil
	case DiskSpaceLow:
		rec.Finished = o.At
		rec.Status = diskspace.Message
		rec.Details = o.Report.Details()
	case LaunchFailed:
		rec.Started = o.Started
		rec.Finished = o.At
		rec.Status = "failed to start: " + o.Err.Error()
	case ExitFailure:
		rec.Started = o.Started
		rec.Finished = o.Finished
		rec.Status = o.Status
		rec.Stdout = o.Stdout
		rec.Stderr = o.Stderr
	default:
		return fmt.Errorf("unhandled outcome %T", outcome)
	}

	if err := w.Store.Put(job.ID, rec.Bytes()); err != nil {
		return fmt.Errorf("write failure record for %s: %w", job.ID, err)
	}
	return nil
}

func historyEntry(job Job, runID string, outcome Outcome) history.Entry {
	e := history.Entry{
		JobID:   job.ID,
		RunID:   runID,
		Command: strings.Join(job.Argv(), " "),
	}

	switch o := outcome.(type) {
	case Succeeded:
		e.Outcome = history.OutcomeSuccess
		e.StartedAt, e.FinishedAt = o.Started, o.Finished
	case ExitFailure:
		e.Outcome = history.OutcomeFailure
		e.ExitCode = o.ExitCode
		e.Status = o.Status
		e.StartedAt, e.FinishedAt = o.Started, o.Finished
	case LaunchFailed:
		e.Outcome = history.OutcomeLaunchError
		e.ExitCode = -1
		e.Status = o.Err.Error()
		e.StartedAt, e.FinishedAt = o.Started, o.At
	case DiskSpaceLow:
		e.Outcome = history.OutcomeDiskSpace
		e.ExitCode = -1
		e.Status = diskspace.Message
		e.StartedAt, e.FinishedAt = o.At, o.At
	}
	e.DurationMs = e.FinishedAt.Sub(e.StartedAt).Milliseconds()
	return e
}
