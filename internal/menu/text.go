package menu

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aceteam-ai/cronwatch/internal/scan"
	"github.com/aceteam-ai/cronwatch/internal/ui"
)

// TextOptions control the human-readable renderer.
type TextOptions struct {
	// Links wraps local record paths in OSC 8 hyperlinks.
	Links bool
}

// WriteText writes r for a terminal. Colors follow what w supports.
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	st := ui.NewStyles(lipgloss.NewRenderer(w))
	var b strings.Builder

	if r.Failed() {
		for _, line := range r.Error {
			b.WriteString(st.Error.Render(line))
			b.WriteByte('\n')
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
	if r.Total == 0 {
		return nil
	}

	b.WriteString(st.Header.Render(fmt.Sprintf("cron: %d", r.Total)))
	b.WriteByte('\n')
	for _, h := range r.Hosts {
		if len(h.Jobs) == 0 {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(st.Host.Render(h.Host))
		b.WriteByte('\n')
		for _, j := range h.Jobs {
			record := j.Record
			if opts.Links && h.Host == scan.LocalHost {
				record = ui.FileLink(j.Record, j.Record)
			}
			b.WriteString(st.Job.Render(ui.Truncate(j.ID, ui.MaxLabelWidth)))
			b.WriteString("  ")
			b.WriteString(st.Muted.Render(record))
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
