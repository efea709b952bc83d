package menu

import (
	"os"
	"strconv"
)

// Flavor is the menu-bar host that runs the plugin.
type Flavor int

const (
	// BitBar covers BitBar and xbar.
	BitBar Flavor = iota
	SwiftBar
)

// SFImage is the SwiftBar header symbol.
const SFImage = "calendar.badge.clock"

// DetectFlavor picks SwiftBar when the plugin runs under it.
func DetectFlavor() Flavor {
	if os.Getenv("SWIFTBAR") != "" {
		return SwiftBar
	}
	return BitBar
}

// Item is one menu line.
type Item struct {
	Text      string
	Action    *Action
	SFImage   string
	Separator bool
}

// Menu is an ordered list of items; the first item is the menu-bar title.
type Menu []Item

var separator = Item{Separator: true}

// FromReport lays out r as a menu. A report with no failures yields an empty
// menu; a failed report yields its error lines only.
func FromReport(r *Report, f Flavor) Menu {
	if r.Failed() {
		m := make(Menu, 0, len(r.Error))
		for _, line := range r.Error {
			m = append(m, Item{Text: line})
		}
		return m
	}
	if r.Total == 0 {
		return nil
	}

	m := Menu{header(r.Total, f), separator}
	first := true
	for _, h := range r.Hosts {
		if len(h.Jobs) == 0 {
			continue
		}
		if !first {
			m = append(m, separator)
		}
		first = false

		m = append(m, Item{Text: h.Host})
		for _, j := range h.Jobs {
			action := j.Action
			m = append(m, Item{Text: j.ID, Action: &action})
		}
	}
	return m
}

func header(total int, f Flavor) Item {
	if f == SwiftBar {
		return Item{Text: strconv.Itoa(total), SFImage: SFImage}
	}
	return Item{Text: "cron: " + strconv.Itoa(total)}
}
