package menu

import (
	"fmt"
	"io"
	"strings"
)

// Format selects a renderer.
type Format string

const (
	FormatAuto       Format = "auto"
	FormatBitBar     Format = "bitbar"
	FormatSwiftBar   Format = "swiftbar"
	FormatText       Format = "text"
	FormatTable      Format = "table"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatPrometheus Format = "prometheus"
)

// Formats lists every accepted --format value.
var Formats = []Format{FormatAuto, FormatBitBar, FormatSwiftBar, FormatText, FormatTable, FormatJSON, FormatYAML, FormatPrometheus}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(names, ", "))
}

// Resolve replaces FormatAuto with the plugin flavor in use.
func (f Format) Resolve() Format {
	if f != FormatAuto {
		return f
	}
	if DetectFlavor() == SwiftBar {
		return FormatSwiftBar
	}
	return FormatBitBar
}

// Render writes r to w in format f.
func Render(w io.Writer, f Format, r *Report, opts TextOptions) error {
	switch f.Resolve() {
	case FormatBitBar:
		return WriteBitBar(w, FromReport(r, BitBar))
	case FormatSwiftBar:
		return WriteBitBar(w, FromReport(r, SwiftBar))
	case FormatText:
		return WriteText(w, r, opts)
	case FormatTable:
		return WriteTable(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatPrometheus:
		return WritePrometheus(w, r)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
