// internal/ui/hyperlink.go
package ui

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Hyperlink wraps text in an OSC 8 escape sequence so terminals that support it
// (iTerm2, GNOME Terminal, kitty, WezTerm) make it clickable.
func Hyperlink(target, text string) string {
	// OSC 8 format: \x1b]8;;URL\x07TEXT\x1b]8;;\x07
	return fmt.Sprintf("\x1b]8;;%s\x07%s\x1b]8;;\x07", target, text)
}

// FileURL returns a file:// URL for an absolute or relative local path.
func FileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// FileLink links text to a local file.
func FileLink(path, text string) string {
	return Hyperlink(FileURL(path), text)
}
