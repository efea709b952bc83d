package scan

import (
	"fmt"
	"strings"

	"github.com/aceteam-ai/cronwatch/internal/record"
)

// ErrInvalidFilename is returned when a listed filename is not valid UTF-8.
var ErrInvalidFilename = record.ErrInvalidFilename

// CommandError is a remote listing that exited non-zero.
type CommandError struct {
	Host     string
	Args     []string
	ExitCode int
	// Status is the exit status as printed by the os/exec package.
	Status string
	Stdout []byte
	Stderr []byte
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s on %s: subcommand exited with %s", strings.Join(e.Args, " "), e.Host, e.Status)
}
