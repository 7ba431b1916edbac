package feed

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/netterm/domain"
)

func (m Model) handleLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		prev := m.feed
		m.feed = msg.Feed
		if msg.Feed == domain.FeedProfile {
			if m.profile != nil && m.profile.Username != msg.Username {
				m.profile = nil
			}
			m.profileUser = msg.Username
		} else {
			m.profile = nil
			m.profileUser = ""
		}
		m.page = msg.Page
		m.page.Feed = msg.Feed
		m.loading = false
		m.loaded = true
		m.err = nil
		m.resetCursor()
		if msg.Feed != prev && msg.Feed != domain.FeedProfile {
			return m, emit(FeedChangedMsg{Feed: msg.Feed})
		}
		return m, nil

	case ProfileLoadedMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		p := msg.Profile
		m.feed = domain.FeedProfile
		m.profileUser = p.Username
		m.page = p.Page
		p.Page = domain.Page{}
		m.profile = &p
		m.loading = false
		m.loaded = true
		m.err = nil
		m.resetCursor()
		return m, nil

	case PageErrorMsg:
		if msg.ReqSeq != m.reqSeq {
			return m, nil
		}
		m.loading = false
		m.log.Error().Err(msg.Err).Str("feed", string(msg.Feed)).Msg("loading posts failed")

		if msg.Feed == domain.FeedFollowing && errors.Is(msg.Err, domain.ErrUnauthorized) {
			if !m.loaded {
				// A remembered following feed from a session that has since ended.
				return m.load(domain.FeedAll, 1, "")
			}
			m.notice = NoticeFollowingLogin
			return m, nil
		}
		if !m.loaded {
			m.err = msg.Err
			return m, nil
		}
		m.status = "Error: " + msg.Err.Error()
		return m, nil
	}
	return m, nil
}
