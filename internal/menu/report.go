// Package menu turns scanned host groups into the reporter's output: a
// BitBar/SwiftBar menu, or one of the alternative text and machine formats.
package menu

import (
	"github.com/aceteam-ai/cronwatch/internal/scan"
)

// Action is what clicking a job line runs.
type Action struct {
	Command []string `json:"command" yaml:"command"`
	// Terminal asks the plugin host to run Command in a terminal window.
	Terminal bool `json:"terminal" yaml:"terminal"`
}

// Job is one failing job and where its record can be read.
type Job struct {
	ID     string `json:"id" yaml:"id"`
	Record string `json:"record" yaml:"record"`
	Action Action `json:"action" yaml:"action"`
}

// HostReport is the failing jobs of one host. Hosts with no failures are kept
// here and skipped by the menu renderers.
type HostReport struct {
	Host string `json:"host" yaml:"host"`
	Jobs []Job  `json:"jobs" yaml:"jobs"`
}

// Report is the aggregated view of one reporter run. Exactly one of Hosts and
// Error is meaningful.
type Report struct {
	Total int          `json:"total" yaml:"total"`
	Hosts []HostReport `json:"hosts" yaml:"hosts"`
	// Error holds the diagnostic lines when the scan failed.
	Error []string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the scan aborted with an error.
func (r *Report) Failed() bool {
	return len(r.Error) > 0
}

// Locations resolve where a job's record lives and how to open it.
type Locations struct {
	// LocalPath returns the record path for a local job.
	LocalPath func(id string) string
	// Opener is the argv prefix used to open a local record.
	Opener []string
	// RemoteDir is the errors directory on remote hosts.
	RemoteDir string
}

// Build assembles a Report from scanned groups, preserving their order.
func Build(groups []scan.HostGroup, loc Locations) *Report {
	r := &Report{Hosts: make([]HostReport, 0, len(groups))}
	for _, g := range groups {
		hr := HostReport{Host: g.Host, Jobs: make([]Job, 0, len(g.Jobs))}
		for _, id := range g.Jobs {
			hr.Jobs = append(hr.Jobs, loc.job(g.Host, id))
		}
		r.Hosts = append(r.Hosts, hr)
	}
	r.Total = scan.Total(groups)
	return r
}

// FromError returns the Report for a failed scan.
func FromError(err error) *Report {
	return &Report{Hosts: []HostReport{}, Error: ErrorLines(err)}
}

func (loc Locations) job(host, id string) Job {
	if host == scan.LocalHost {
		path := loc.LocalPath(id)
		cmd := append(append([]string{}, loc.Opener...), path)
		return Job{ID: id, Record: path, Action: Action{Command: cmd}}
	}
	path := scan.RemotePath(loc.RemoteDir, id)
	return Job{
		ID:     id,
		Record: host + ":" + path,
		Action: Action{
			Command:  []string{"ssh", host, "cat", scan.ShellQuote(path)},
			Terminal: true,
		},
	}
}
