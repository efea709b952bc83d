package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrUnsupportedOS is returned when no errors directory is known for the host OS.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// RemoteErrorsDir is where remote hosts keep their failure records. Remote hosts
// are assumed to be Linux machines; the path is relative to the login home so it
// can be handed to ssh as-is.
const RemoteErrorsDir = ".local/share/syncbin"

// Paths holds every filesystem location the tools care about. It is resolved once
// at startup and passed down, so nothing below cmd/ looks at runtime.GOOS.
type Paths struct {
	// ErrorsDir is the local directory holding cronjob-<id>.log records.
	ErrorsDir string
	// RemoteErrorsDir is the same directory on remote hosts, as understood by ssh.
	RemoteErrorsDir string
	// ConfigDirs are searched in order for bitbar/plugins/cron.json.
	ConfigDirs []string
	// DataDir holds tool-owned state such as the run history database.
	DataDir string
}

// DefaultPaths resolves Paths for the running OS and the current user.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	errorsDir, err := ErrorsDirFor(runtime.GOOS, home)
	if err != nil {
		return Paths{}, err
	}

	return Paths{
		ErrorsDir:       errorsDir,
		RemoteErrorsDir: RemoteErrorsDir,
		ConfigDirs:      ConfigDirs(home),
		DataDir:         DataDir(home),
	}, nil
}

// ErrorsDirFor returns the local errors directory for the given GOOS and home directory.
func ErrorsDirFor(goos, home string) (string, error) {
	switch goos {
	case "linux":
		return filepath.Join(home, ".local", "share", "syncbin"), nil
	case "darwin":
		return filepath.Join(home, "Desktop"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}

// ConfigDirs returns the XDG config search path: $XDG_CONFIG_HOME (default
// ~/.config) followed by each entry of $XDG_CONFIG_DIRS (default /etc/xdg).
func ConfigDirs(home string) []string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" || !filepath.IsAbs(configHome) {
		configHome = filepath.Join(home, ".config")
	}
	dirs := []string{configHome}

	configDirs := os.Getenv("XDG_CONFIG_DIRS")
	if configDirs == "" {
		configDirs = "/etc/xdg"
	}
	for _, dir := range strings.Split(configDirs, string(os.PathListSeparator)) {
		if dir != "" && filepath.IsAbs(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// DataDir returns $XDG_DATA_HOME/cronwatch, defaulting to ~/.local/share/cronwatch.
func DataDir(home string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" || !filepath.IsAbs(dataHome) {
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "cronwatch")
}

// LogDir returns the directory for debug session logs (~/.cronwatch/logs).
func LogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cronwatch", "logs"), nil
}
