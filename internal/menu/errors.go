package menu

import (
	"errors"
	"strings"

	"github.com/aceteam-ai/cronwatch/internal/config"
	"github.com/aceteam-ai/cronwatch/internal/scan"
)

// ErrorLines describes err as the lines of an error menu.
func ErrorLines(err error) []string {
	var cmdErr *scan.CommandError
	var cfgErr *config.Error
	switch {
	case errors.As(err, &cmdErr):
		return []string{
			"subcommand exited with " + cmdErr.Status,
			"stdout: " + lossy(cmdErr.Stdout),
			"stderr: " + lossy(cmdErr.Stderr),
		}
	case errors.As(err, &cfgErr):
		return []string{"error reading config file: " + cfgErr.Err.Error()}
	case errors.Is(err, scan.ErrInvalidFilename):
		return []string{"filename was not valid UTF-8"}
	default:
		return []string{"I/O error: " + err.Error()}
	}
}

func lossy(b []byte) string {
	return strings.TrimRight(strings.ToValidUTF8(string(b), "�"), "\n")
}
