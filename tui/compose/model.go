package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/infra/editor"
)

// --- Mode ---

type mode int

const (
	editorMode mode = iota
	inlineMode
)

const charLimit = 1000

// --- Messages ---

// DoneMsg is sent when composing is complete (success, cancel or error).
type DoneMsg struct {
	Content   string // Empty if cancelled
	PostID    int64  // ID of the post being edited
	IsEdit    bool
	Cancelled bool
	Err       error
}

// editorFinishedMsg is sent after the external editor exits.
type editorFinishedMsg struct {
	tmpPath string
	err     error
}

// --- Model ---

// Model holds the state for the compose view.
type Model struct {
	mode     mode
	editor   *editor.EnvEditor
	status   string
	textarea textarea.Model // Only used in inline mode
	isEdit   bool
	postID   int64
	content  string // Initial content for editing
}

// NewEditor creates a compose model that opens $EDITOR via tea.Exec.
func NewEditor(ed *editor.EnvEditor) Model {
	return Model{
		mode:   editorMode,
		editor: ed,
		status: "Opening editor...",
	}
}

// NewEditorWithContent creates a compose model for editing an existing post.
func NewEditorWithContent(ed *editor.EnvEditor, postID int64, content string) Model {
	m := NewEditor(ed)
	m.isEdit = true
	m.postID = postID
	m.content = content
	return m
}

// NewInline creates a compose model with an inline Bubble Tea textarea.
func NewInline() Model {
	ta := textarea.New()
	ta.Placeholder = "What's happening?"
	ta.CharLimit = charLimit
	ta.SetWidth(72)
	ta.SetHeight(6)
	ta.Focus()

	return Model{
		mode:     inlineMode,
		textarea: ta,
	}
}

// NewInlineWithContent creates a compose model for editing a post inline.
func NewInlineWithContent(postID int64, content string) Model {
	m := NewInline()
	m.textarea.SetValue(content)
	m.isEdit = true
	m.postID = postID
	m.content = content
	return m
}

// Init returns the initial command for the active mode.
func (m Model) Init() tea.Cmd {
	switch m.mode {
	case editorMode:
		return m.launchEditor()
	case inlineMode:
		return textarea.Blink
	}
	return nil
}

// launchEditor prepares the editor command and uses tea.Exec to properly
// suspend Bubble Tea's raw terminal mode while the editor runs.
func (m Model) launchEditor() tea.Cmd {
	cmd, tmpPath, err := m.editor.Cmd(m.content)
	if err != nil {
		return done(DoneMsg{Err: fmt.Errorf("preparing editor: %w", err), IsEdit: m.isEdit, PostID: m.postID})
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{tmpPath: tmpPath, err: err}
	})
}

// Update handles messages for the compose view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	// --- Editor mode messages ---

	case editorFinishedMsg:
		if msg.err != nil {
			return m, done(DoneMsg{Err: fmt.Errorf("editor: %w", msg.err), IsEdit: m.isEdit, PostID: m.postID})
		}

		content, err := m.editor.ReadContent(msg.tmpPath)
		if err != nil {
			return m, done(DoneMsg{Err: err, IsEdit: m.isEdit, PostID: m.postID})
		}
		return m, done(m.finish(content))

	// --- Inline mode messages ---

	case tea.KeyMsg:
		if m.mode != inlineMode {
			break
		}

		switch msg.String() {
		case "esc":
			return m, done(DoneMsg{IsEdit: m.isEdit, PostID: m.postID, Cancelled: true})

		case "ctrl+d":
			content := strings.TrimSpace(m.textarea.Value())
			if content == "" {
				// Stay in the composer so the user can fix it.
				m.status = "Please enter some content for your post."
				return m, nil
			}
			return m, done(m.finish(content))
		}

		m.status = ""
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	if m.mode == inlineMode {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

// finish turns composed text into a DoneMsg. An unchanged edit is a cancel;
// blank new content is reported as domain.ErrEmptyPost.
func (m Model) finish(content string) DoneMsg {
	out := DoneMsg{IsEdit: m.isEdit, PostID: m.postID}
	content = strings.TrimSpace(content)
	switch {
	case m.isEdit && (content == "" || content == strings.TrimSpace(m.content)):
		out.Cancelled = true
	case content == "":
		out.Err = domain.ErrEmptyPost
	default:
		out.Content = content
	}
	return out
}

// done wraps a DoneMsg into a tea.Cmd for immediate delivery.
func done(msg DoneMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}
