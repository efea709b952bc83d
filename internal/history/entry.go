package history

import "time"

// Outcome labels for a run, mirroring the wrapper's outcome variants.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeLaunchError = "launch_error"
	OutcomeDiskSpace   = "disk_space"
)

// Entry is one wrapper run.
type Entry struct {
	// Database ID (set after insert)
	ID int64

	JobID   string
	RunID   string
	Command string

	Outcome  string
	ExitCode int
	Status   string

	StartedAt  time.Time
	FinishedAt time.Time
	DurationMs int64
}

// Failed reports whether the run left a failure record behind.
func (e Entry) Failed() bool {
	return e.Outcome != OutcomeSuccess
}
