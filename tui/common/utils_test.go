package common

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if got := RelativeTime(time.Time{}, now); got != "" {
		t.Fatalf("zero time should render empty, got %q", got)
	}
	if got := RelativeTime(now, now); got != "just now" {
		t.Fatalf("unexpected result for now: %q", got)
	}
	if got := RelativeTime(now.Add(-3*time.Minute), now); got != "3 minutes ago" {
		t.Fatalf("unexpected relative time: %q", got)
	}
}

func TestWrap_RespectsWidth(t *testing.T) {
	text := "a fairly long sentence with a supercalifragilisticexpialidocious word"
	out := Wrap(text, 12)
	for _, ln := range strings.Split(out, "\n") {
		if ansi.StringWidth(ln) > 12 {
			t.Fatalf("line exceeds width: %q", ln)
		}
	}
	if Wrap("short", 0) != "short" {
		t.Fatalf("non-positive width should be a no-op")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 6); got != "hello…" {
		t.Fatalf("unexpected truncate result: %q", got)
	}
	if got := Truncate("hi", 6); got != "hi" {
		t.Fatalf("short string should be unchanged: %q", got)
	}
}
