package record

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Section headers separating captured output inside a record.
const (
	StdoutHeader = "--- stdout ---"
	StderrHeader = "--- stderr ---"
)

// Record is the diagnostic written for a failed run. Only the text produced by
// Bytes is persisted; nothing parses it back.
type Record struct {
	JobID    string
	RunID    string
	Host     string
	Command  []string
	Started  time.Time
	Finished time.Time
	// Status is the one-line verdict: an exit status, a launch error, or the
	// disk-space message.
	Status string
	// Details are extra "key: value" lines printed after Status.
	Details []string
	// Stdout and Stderr are written verbatim. A nil slice omits the section.
	Stdout []byte
	Stderr []byte
}

// Bytes renders the record as human-readable text.
func (r *Record) Bytes() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "cronjob: %s\n", r.JobID)
	if r.RunID != "" {
		fmt.Fprintf(&b, "run: %s\n", r.RunID)
	}
	if r.Host != "" {
		fmt.Fprintf(&b, "host: %s\n", r.Host)
	}
	if len(r.Command) > 0 {
		fmt.Fprintf(&b, "command: %s\n", strings.Join(r.Command, " "))
	}
	if !r.Started.IsZero() {
		fmt.Fprintf(&b, "started: %s\n", r.Started.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "finished: %s\n", r.Finished.Format(time.RFC3339))
	fmt.Fprintf(&b, "status: %s\n", r.Status)
	for _, line := range r.Details {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if r.Stdout != nil {
		writeSection(&b, StdoutHeader, r.Stdout)
	}
	if r.Stderr != nil {
		writeSection(&b, StderrHeader, r.Stderr)
	}
	return b.Bytes()
}

func writeSection(b *bytes.Buffer, header string, content []byte) {
	b.WriteString(header)
	b.WriteByte('\n')
	b.Write(content)
	if len(content) > 0 && content[len(content)-1] != '\n' {
		b.WriteByte('\n')
	}
}
