package scan

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/aceteam-ai/cronwatch/internal/record"
)

// Output is what a finished command produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Status   string
}

// Runner executes a command to completion. A non-zero exit is reported through
// Output, not as an error; errors mean the command could not be run at all.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// ExecRunner runs commands on the local machine.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return Output{}, fmt.Errorf("%s command not found: %w", name, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return out, nil
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		out.Status = exitErr.ProcessState.String()
		return out, nil
	default:
		return Output{}, fmt.Errorf("run %s: %w", name, err)
	}
}

// SSHSource lists a remote errors directory with `ssh <host> ls <dir>`.
type SSHSource struct {
	HostName string
	// Dir is the remote errors directory, relative to the login home unless absolute.
	Dir    string
	Runner Runner
}

func (s *SSHSource) Host() string { return s.HostName }

// Command returns the ssh argv used for listing.
func (s *SSHSource) Command() []string {
	return []string{"ssh", "-o", "BatchMode=yes", s.HostName, "ls", ShellQuote(s.Dir)}
}

func (s *SSHSource) FailedJobs(ctx context.Context) ([]string, error) {
	argv := s.Command()
	out, err := s.Runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.HostName, err)
	}
	if out.ExitCode != 0 {
		return nil, &CommandError{
			Host:     s.HostName,
			Args:     argv,
			ExitCode: out.ExitCode,
			Status:   out.Status,
			Stdout:   out.Stdout,
			Stderr:   out.Stderr,
		}
	}
	if !utf8.Valid(out.Stdout) {
		return nil, fmt.Errorf("list %s: %w", s.HostName, ErrInvalidFilename)
	}

	var ids []string
	sc := bufio.NewScanner(bytes.NewReader(out.Stdout))
	for sc.Scan() {
		if id, ok := record.ParseFilename(strings.TrimRight(sc.Text(), "\r")); ok {
			ids = append(ids, id)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read listing from %s: %w", s.HostName, err)
	}
	return normalize(ids), nil
}

// RemotePath returns the record path for id inside a remote errors directory.
func RemotePath(dir, id string) string {
	return path.Join(dir, record.FileName(id))
}

// ShellQuote quotes s for the remote login shell. Plain words pass through.
func ShellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./~+=:,@%", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
