package wrapper

import (
	"time"

	"github.com/aceteam-ai/cronwatch/internal/diskspace"
)

// Outcome is the job-domain result of one invocation. Exactly one of
// DiskSpaceLow, LaunchFailed, ExitFailure or Succeeded; Apply matches on it
// to decide between writing and clearing the failure record.
type Outcome interface {
	outcome()
}

// DiskSpaceLow means the guard tripped and the command was never started.
type DiskSpaceLow struct {
	Report diskspace.Report
	At     time.Time
}

// LaunchFailed means the command could not be started at all.
type LaunchFailed struct {
	Err     error
	Started time.Time
	At      time.Time
}

// ExitFailure means the command ran and exited unsuccessfully.
type ExitFailure struct {
	ExitCode int
	// Status is the process state as text, e.g. "exit status 3" or "signal: killed".
	Status   string
	Stdout   []byte
	Stderr   []byte
	Started  time.Time
	Finished time.Time
}

// Succeeded means the command exited with status zero.
type Succeeded struct {
	Started  time.Time
	Finished time.Time
}

func (DiskSpaceLow) outcome() {}
func (LaunchFailed) outcome() {}
func (ExitFailure) outcome()  {}
func (Succeeded) outcome()    {}
