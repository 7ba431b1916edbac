package network

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitizeForTerminal strips escape sequences and control characters from
// server-supplied text so posts cannot drive the user's terminal.
// Newlines and tabs survive.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		case r >= 0x80 && r < 0xa0:
			return -1
		}
		return r
	}, s)
}
