package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscapes is returned when a name would resolve outside its base directory.
var ErrPathEscapes = errors.New("path escapes base directory")

// WithinDir joins name onto baseDir and verifies the result stays inside baseDir.
// Prefix matches against sibling directories (/home/user vs /home/username) are
// rejected by comparing with a trailing separator.
func WithinDir(baseDir, name string) (string, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	target := filepath.Join(absBase, name)
	if target == absBase {
		return "", fmt.Errorf("%w: %q names %q itself", ErrPathEscapes, name, baseDir)
	}

	withSep := absBase + string(filepath.Separator)
	if !strings.HasPrefix(target, withSep) {
		return "", fmt.Errorf("%w: %q escapes %q", ErrPathEscapes, name, baseDir)
	}
	return target, nil
}
