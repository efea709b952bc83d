// internal/ui/spinner.go
package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows progress on a terminal while hosts are scanned. It only
// writes to w, which should be a TTY.
type Spinner struct {
	mu        sync.Mutex
	w         io.Writer
	message   string
	detail    string
	running   bool
	done      chan struct{}
	stopped   chan struct{}
	startTime time.Time
	interval  time.Duration
}

// NewSpinner returns a stopped spinner writing to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w, interval: 100 * time.Millisecond}
}

// Start begins the animation with message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.message = message
	s.detail = ""
	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	s.startTime = time.Now()

	go s.animate(s.done, s.stopped)
}

// Detail sets the text shown after the message.
func (s *Spinner) Detail(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = fmt.Sprintf(format, args...)
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.done)
	stopped := s.stopped
	s.mu.Unlock()

	<-stopped
	fmt.Fprint(s.w, "\r\033[K")
}

func (s *Spinner) animate(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			line := s.frame(spinnerFrames[i%len(spinnerFrames)])
			s.mu.Unlock()
			fmt.Fprint(s.w, "\r\033[K"+line)
		}
	}
}

// frame renders one animation frame. Callers hold s.mu.
func (s *Spinner) frame(glyph string) string {
	line := color.CyanString(glyph) + " " + s.message
	if s.detail != "" {
		line += color.HiBlackString(" %s", s.detail)
	}
	if elapsed := time.Since(s.startTime); elapsed > time.Second {
		line += color.HiBlackString(" (%.1fs)", elapsed.Seconds())
	}
	return line
}
