package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/netterm/domain"
)

// handleResultMsg applies the outcome of a like, follow, delete or edit.
// Server responses are authoritative for counts and content.
func (m Model) handleResultMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LikeResultMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Int64("post", msg.ID).Msg("toggling like failed")
			return m, nil
		}
		if i := m.indexOf(msg.ID); i >= 0 {
			m.page.Posts[i].Likes = msg.State.Likes
			m.page.Posts[i].Liked = msg.State.Liked
		}
		return m, nil

	case FollowResultMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Str("user", msg.Username).Msg("toggling follow failed")
			return m, nil
		}
		if m.profile != nil && m.profile.Username == msg.Username {
			p := *m.profile
			p.IsFollowing = msg.State.IsFollowing
			p.Followers = msg.State.Followers
			p.Following = msg.State.Following
			m.profile = &p
		}
		return m, nil

	case DeleteResultMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Int64("post", msg.ID).Msg("deleting post failed")
			return m, nil
		}
		if i := m.indexOf(msg.ID); i >= 0 {
			m.page.Posts = append(m.page.Posts[:i:i], m.page.Posts[i+1:]...)
			if m.cursor >= len(m.page.Posts) && m.cursor > 0 {
				m.cursor = len(m.page.Posts) - 1
			}
			m.ensureCursorVisible()
		}
		m.status = "Post deleted."
		return m, nil

	case EditResultMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Int64("post", msg.ID).Msg("editing post failed")
			return m.load(domain.FeedAll, 1, "")
		}
		if i := m.indexOf(msg.ID); i >= 0 {
			m.page.Posts[i].Content = msg.Post.Content
			if !msg.Post.EditedAt.IsZero() {
				m.page.Posts[i].EditedAt = msg.Post.EditedAt
			}
		}
		m.status = "Post updated."
		return m, nil
	}
	return m, nil
}

func (m Model) indexOf(id int64) int {
	for i, p := range m.page.Posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
