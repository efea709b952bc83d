package record

import "errors"

// Naming errors
var (
	// ErrInvalidID indicates a job identifier that cannot be embedded in a filename
	ErrInvalidID = errors.New("invalid job identifier")

	// ErrInvalidFilename indicates a directory entry whose name is not valid UTF-8
	ErrInvalidFilename = errors.New("filename was not valid UTF-8")
)
