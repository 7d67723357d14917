package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
)

const day = 24 * time.Hour

// FormatAge renders how long ago t was, relative to now.
func FormatAge(t, now time.Time) string {
	days := int(now.Sub(t) / day)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

// Preview flattens content to a single paragraph and clamps it to the given
// number of lines of at most width cells. Clamped text ends with an ellipsis.
func Preview(content string, width, lines int) string {
	text := strings.Join(strings.Fields(content), " ")
	if text == "" || width <= 0 || lines <= 0 {
		return ""
	}

	wrapped := strings.Split(wordwrap.String(text, width), "\n")
	clamped := len(wrapped) > lines
	if clamped {
		wrapped = wrapped[:lines]
	}
	for i, line := range wrapped {
		if clamped && i == len(wrapped)-1 {
			wrapped[i] = ansi.Truncate(line, width-1, "") + "…"
			continue
		}
		wrapped[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(wrapped, "\n")
}

// CountLabel renders the size of the collection.
func CountLabel(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}
