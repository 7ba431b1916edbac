package compose

import (
	"fmt"
	"strings"

	"github.com/CrestNiraj12/netterm/tui/common"
)

// View renders the compose view based on the active mode.
func (m Model) View() string {
	switch m.mode {
	case editorMode:
		return m.status + "\n"

	case inlineMode:
		var b strings.Builder
		heading := "  New Post\n\n"
		if m.isEdit {
			heading = "  Edit Post\n\n"
		}
		b.WriteString(common.AppTitleStyle.Render("netterm"))
		b.WriteString(heading)
		b.WriteString(m.textarea.View())
		b.WriteString("\n\n")

		if m.status != "" {
			b.WriteString(common.ErrorStyle.Render(m.status) + "\n")
		}
		action := "post"
		if m.isEdit {
			action = "save"
		}
		b.WriteString(common.StatusBarStyle.Render(
			fmt.Sprintf("  ctrl+d: %s • esc: cancel • %d/%d chars",
				action, len([]rune(m.textarea.Value())), charLimit),
		))

		return b.String()
	}

	return ""
}
