package common

import (
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// RelativeTime renders t relative to now, e.g. "3 minutes ago".
// A zero time renders as an empty string.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.Sub(t) < time.Second && now.Sub(t) > -time.Second {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Wrap word-wraps text to width cells, hard-cutting words that do not fit.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// Truncate shortens s to at most width cells, ending with "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
