package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/netterm/domain"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	// A notice blocks until any key dismisses it.
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	if m.confirmDelete {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmDelete = false
			if p, ok := m.SelectedPost(); ok {
				return m, m.deletePost(p.ID)
			}
		case key.Matches(msg, m.keys.Cancel):
			m.confirmDelete = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = !m.showHints

	case key.Matches(msg, m.keys.Refresh):
		if m.feed == domain.FeedProfile && m.page.Number <= 1 {
			return m.loadProfile(m.profileUser)
		}
		return m.load(m.feed, m.page.Number, m.profileUser)

	case key.Matches(msg, m.keys.AllFeed):
		return m.load(domain.FeedAll, 1, "")

	case key.Matches(msg, m.keys.Following):
		return m.load(domain.FeedFollowing, 1, "")

	case key.Matches(msg, m.keys.Profile):
		if p, ok := m.SelectedPost(); ok && p.Author != "" {
			return m.loadProfile(p.Author)
		}

	case key.Matches(msg, m.keys.OwnProfile):
		if m.viewer.Authenticated && m.viewer.Username != "" {
			return m.loadProfile(m.viewer.Username)
		}

	case key.Matches(msg, m.keys.Follow):
		if m.CanFollow() {
			return m, m.toggleFollow(m.profile.Username)
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.page.HasNext && !m.loading {
			return m.load(m.feed, m.page.Number+1, m.profileUser)
		}

	case key.Matches(msg, m.keys.PrevPage):
		if m.page.HasPrevious && !m.loading && m.page.Number > 1 {
			return m.load(m.feed, m.page.Number-1, m.profileUser)
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.page.Posts)-1 {
			m.cursor++
		}
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.Like):
		if p, ok := m.SelectedPost(); ok && m.page.Authenticated {
			return m, m.toggleLike(p.ID)
		}

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.EditInline):
		if p, ok := m.SelectedPost(); ok && p.IsAuthor {
			inline := key.Matches(msg, m.keys.EditInline)
			return m, emit(EditPostMsg{Post: p, UseInline: inline})
		}

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.SelectedPost(); ok && p.IsAuthor {
			m.confirmDelete = true
		}
	}

	return m, nil
}

// CanFollow reports whether the follow control applies: a signed-in viewer
// looking at somebody else's profile.
func (m Model) CanFollow() bool {
	if m.feed != domain.FeedProfile || m.profile == nil {
		return false
	}
	// Without a known viewer the profile could be our own.
	if !m.viewer.Authenticated || m.viewer.Username == "" {
		return false
	}
	return m.profile.Username != m.viewer.Username
}
