package record

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// FilePrefix and FileSuffix frame the job identifier in a record's filename.
	FilePrefix = "cronjob-"
	FileSuffix = ".log"
)

var fileNameRegex = regexp.MustCompile(`^cronjob-(.+)\.log$`)

// FileName returns the record filename for a job identifier.
func FileName(id string) string {
	return FilePrefix + id + FileSuffix
}

// ParseFilename extracts the job identifier from a record filename.
// Names that do not follow the cronjob-<id>.log convention report ok=false.
func ParseFilename(name string) (id string, ok bool) {
	m := fileNameRegex.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ValidateID checks that id can be used as the middle of a record filename.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case id == "." || id == "..":
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	case strings.ContainsAny(id, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	case strings.ContainsAny(id, "\r\n"):
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidID, id)
	}
	return nil
}
