package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aceteam-ai/cronwatch/internal/ui"
)

// WriteBitBar writes m in the BitBar/SwiftBar plugin line protocol.
func WriteBitBar(w io.Writer, m Menu) error {
	bw := bufio.NewWriter(w)
	for _, item := range m {
		if item.Separator {
			bw.WriteString("---\n")
			continue
		}
		bw.WriteString(itemText(item.Text))
		if params := itemParams(item); len(params) > 0 {
			bw.WriteString(" | ")
			bw.WriteString(strings.Join(params, " "))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// itemText keeps text on one line and away from the parameter delimiter.
// Lines are never shortened: the plugin host handles wide menus itself.
func itemText(s string) string {
	return strings.ReplaceAll(ui.SingleLine(s), "|", "¦")
}

func itemParams(item Item) []string {
	var params []string
	if item.SFImage != "" {
		params = append(params, "sfimage="+item.SFImage)
	}
	if a := item.Action; a != nil && len(a.Command) > 0 {
		params = append(params, "bash="+quoteParam(a.Command[0]))
		for i, arg := range a.Command[1:] {
			params = append(params, fmt.Sprintf("param%d=%s", i+1, quoteParam(arg)))
		}
		params = append(params, fmt.Sprintf("terminal=%t", a.Terminal))
	}
	return params
}

// quoteParam double-quotes values containing whitespace or quotes.
func quoteParam(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
