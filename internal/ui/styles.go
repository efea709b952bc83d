package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#38B2AC", Dark: "#4FD1C5"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#E53E3E", Dark: "#FC8181"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#718096", Dark: "#A0AEC0"}
)

// Styles is the set of styles used by the text report. Build it with
// NewStyles so color support follows the writer being rendered to.
type Styles struct {
	// Header for the failing-job count
	Header lipgloss.Style
	// Host for host group titles
	Host lipgloss.Style
	// Job for job identifiers
	Job   lipgloss.Style
	Error lipgloss.Style
	Muted lipgloss.Style
}

// NewStyles returns Styles bound to r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Bold(true).
			Foreground(ColorError),
		Host: r.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),
		Job: r.NewStyle().
			PaddingLeft(2),
		Error: r.NewStyle().
			Bold(true).
			Foreground(ColorError),
		Muted: r.NewStyle().
			Foreground(ColorMuted),
	}
}

// MaxLabelWidth is the widest label shown in a menu line.
const MaxLabelWidth = 60

// Truncate shortens s to at most width terminal cells, ending in an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// SingleLine collapses line breaks so s fits on one menu line.
func SingleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
