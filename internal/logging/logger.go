package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where and how much a command logs.
type Options struct {
	// Component is attached to every entry ("wrapper", "reporter").
	Component string
	// Debug lowers the level to debug and tees entries into the session log file.
	Debug bool
	// LogDir holds debug.log when Debug is set. Empty disables the file sink.
	LogDir string
	// Output defaults to os.Stderr. The reporter's stdout belongs to the menu bar.
	Output io.Writer
}

// New creates a zerolog.Logger for a command. The returned closer flushes and
// closes the session log file, if one was opened.
func New(opts Options) (zerolog.Logger, io.Closer) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var writers []io.Writer
	writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: !isTerminal(out)})

	var closer io.Closer = nopCloser{}
	level := zerolog.WarnLevel
	if opts.Debug {
		level = zerolog.DebugLevel
		if f := openSessionLog(opts.LogDir); f != nil {
			writers = append(writers, f)
			closer = f
		}
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return ctx.Logger().Level(level), closer
}

// openSessionLog opens <dir>/debug.log for appending and writes a session header.
// Failure to open the file only disables the file sink.
func openSessionLog(dir string) *os.File {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	fmt.Fprintf(f, "\n=== Debug session started: %s ===\n", time.Now().Format("2006-01-02 15:04:05.000"))
	return f
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
