package platform

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestErrorsDirFor(t *testing.T) {
	tests := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "linux", want: filepath.Join("/home/alice", ".local", "share", "syncbin")},
		{goos: "darwin", want: filepath.Join("/home/alice", "Desktop")},
		{goos: "windows", wantErr: true},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			got, err := ErrorsDirFor(tt.goos, "/home/alice")
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedOS) {
					t.Errorf("ErrorsDirFor(%q) error = %v, want ErrUnsupportedOS", tt.goos, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ErrorsDirFor(%q) unexpected error: %v", tt.goos, err)
			}
			if got != tt.want {
				t.Errorf("ErrorsDirFor(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestConfigDirs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_CONFIG_DIRS", "")

		dirs := ConfigDirs("/home/alice")
		want := []string{"/home/alice/.config", "/etc/xdg"}
		if len(dirs) != len(want) {
			t.Fatalf("ConfigDirs() = %v, want %v", dirs, want)
		}
		for i := range want {
			if dirs[i] != want[i] {
				t.Errorf("ConfigDirs()[%d] = %q, want %q", i, dirs[i], want[i])
			}
		}
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/cfg")
		t.Setenv("XDG_CONFIG_DIRS", "/a:relative:/b")

		dirs := ConfigDirs("/home/alice")
		want := []string{"/cfg", "/a", "/b"}
		if len(dirs) != len(want) {
			t.Fatalf("ConfigDirs() = %v, want %v", dirs, want)
		}
		for i := range want {
			if dirs[i] != want[i] {
				t.Errorf("ConfigDirs()[%d] = %q, want %q", i, dirs[i], want[i])
			}
		}
	})
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	if got := DataDir("/home/alice"); got != "/home/alice/.local/share/cronwatch" {
		t.Errorf("DataDir() = %q", got)
	}

	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DataDir("/home/alice"); got != "/data/cronwatch" {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestOpenCommand(t *testing.T) {
	if got := OpenCommand("darwin"); len(got) != 1 || got[0] != "/usr/bin/open" {
		t.Errorf("OpenCommand(darwin) = %v", got)
	}
	if got := OpenCommand("linux"); len(got) == 0 {
		t.Error("OpenCommand(linux) returned no command")
	}
}
