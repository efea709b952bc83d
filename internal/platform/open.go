package platform

import (
	"os/exec"
)

// OpenCommand returns the argv prefix that opens a local file with the desktop's
// default viewer. The file path is appended by the caller.
func OpenCommand(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"/usr/bin/open"}
	case "linux":
		// Try openers in order of preference
		if isCommandAvailable("xdg-open") {
			return []string{"xdg-open"}
		}
		if isCommandAvailable("gio") {
			return []string{"gio", "open"}
		}
		return []string{"xdg-open"}
	default:
		return []string{"open"}
	}
}

// isCommandAvailable checks if a command is available in PATH
func isCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
