package feed

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/netterm/domain"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ViewerMsg:
		m.viewer = msg.Viewer
		return m, nil

	case NoticeMsg:
		m.notice = msg.Text
		return m, nil

	case ShowAllMsg:
		return m.load(domain.FeedAll, 1, "")
	}

	switch msg.(type) {
	case PageLoadedMsg, PageErrorMsg, ProfileLoadedMsg:
		return m.handleLoadingMsg(msg)
	case LikeResultMsg, FollowResultMsg, DeleteResultMsg, EditResultMsg:
		return m.handleResultMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg.(tea.KeyMsg))
	}

	return m, nil
}

// load starts a fetch of one page. Earlier in-flight fetches become stale.
func (m Model) load(feed domain.Feed, page int, username string) (Model, tea.Cmd) {
	if page < 1 {
		page = 1
	}
	m.reqSeq++
	m.loading = true
	m.status = ""
	m.confirmDelete = false
	return m, m.fetchPage(feed, page, username, m.reqSeq)
}

func (m Model) loadProfile(username string) (Model, tea.Cmd) {
	m.reqSeq++
	m.loading = true
	m.status = ""
	m.confirmDelete = false
	return m, m.fetchProfile(username, m.reqSeq)
}

func (m *Model) resetCursor() {
	m.cursor = 0
	m.startIndex = 0
}

// visibleCount estimates how many post boxes fit on screen.
func (m Model) visibleCount() int {
	if m.height <= 0 {
		return len(m.page.Posts)
	}
	// Header, pagination and status take ~12 lines; a post box ~6.
	n := (m.height - 12) / 6
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) ensureCursorVisible() {
	n := m.visibleCount()
	if n == 0 {
		m.startIndex = 0
		return
	}
	if m.cursor < m.startIndex {
		m.startIndex = m.cursor
	}
	if m.cursor >= m.startIndex+n {
		m.startIndex = m.cursor - n + 1
	}
	if m.startIndex < 0 {
		m.startIndex = 0
	}
}
