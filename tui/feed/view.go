package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/tui/common"
)

const defaultContentWidth = 72

// Empty-page messages per feed.
const (
	EmptyFollowing = "No posts yet from users you follow."
	EmptyProfile   = "This user hasn't posted anything yet."
	EmptyAll       = "No posts available. Be the first to add a post!"
)

// View renders the feed as a string.
func (m Model) View() string {
	var b strings.Builder

	title := common.AppTitleStyle.Render("netterm")
	tagline := common.TaglineStyle.Render("<posts from the network>")
	b.WriteString(title + tagline + "\n")
	b.WriteString(common.FeedLabelStyle.Margin(0, 0, 1, 2).Render(m.feedLabel()) + "\n")

	if m.feed == domain.FeedProfile && m.profile != nil {
		b.WriteString(m.renderProfileHeader() + "\n\n")
	}

	if m.notice != "" {
		b.WriteString(common.NoticeStyle.Render(m.notice+"\n\n(press any key)") + "\n\n")
	}

	switch {
	case m.loading && !m.loaded:
		b.WriteString(fmt.Sprintf("  %s Loading posts...\n", m.spinner.View()))
	case m.err != nil && !m.loaded:
		b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		b.WriteString("\n\n  Press r to retry.\n")
	case len(m.page.Posts) == 0:
		b.WriteString("  " + emptyMessage(m.feed) + "\n")
	default:
		b.WriteString(m.renderPosts())
	}

	if m.confirmDelete {
		b.WriteString("\n" + common.ConfirmStyle.Render("Are you sure you want to delete this post? (y/n)") + "\n")
	}

	if pager := m.renderPager(); pager != "" {
		b.WriteString("\n" + pager + "\n")
	}

	status := m.status
	if m.loading && m.loaded {
		status = m.spinner.View() + " Loading..."
	}
	if status != "" {
		b.WriteString(common.StatusBarStyle.Render(common.Truncate(status, m.width)) + "\n")
	}
	b.WriteString(common.StatusBarStyle.Render(m.renderHints()))

	return b.String()
}

func (m Model) feedLabel() string {
	switch m.feed {
	case domain.FeedFollowing:
		return "Following"
	case domain.FeedProfile:
		return "@" + m.profileUser
	default:
		return "All Posts"
	}
}

func emptyMessage(feed domain.Feed) string {
	switch feed {
	case domain.FeedFollowing:
		return EmptyFollowing
	case domain.FeedProfile:
		return EmptyProfile
	default:
		return EmptyAll
	}
}

func (m Model) renderProfileHeader() string {
	p := m.profile
	line := common.AuthorStyle.Render("@"+p.Username) +
		fmt.Sprintf("   Followers: %d   Following: %d", p.Followers, p.Following)
	if m.CanFollow() {
		label := "Follow"
		if p.IsFollowing {
			label = "Unfollow"
		}
		line += "   " + common.SuccessStyle.Render("[F] "+label)
	}
	return common.ProfileHeaderStyle.Render(line)
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultContentWidth
	}
	w := m.width - 8
	if w > defaultContentWidth+40 {
		w = defaultContentWidth + 40
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderPosts() string {
	var b strings.Builder
	posts := m.page.Posts
	start := m.startIndex
	if start >= len(posts) {
		start = 0
	}
	end := start + m.visibleCount()
	if end > len(posts) {
		end = len(posts)
	}
	width := m.contentWidth()
	for i := start; i < end; i++ {
		box := common.UnselectedStyle
		if i == m.cursor {
			box = common.SelectedStyle
		}
		b.WriteString(box.Width(width).Render(m.renderPost(posts[i], width-2)))
		b.WriteString("\n")
	}
	if end < len(posts) {
		b.WriteString(common.TimestampStyle.Render(fmt.Sprintf("  … %d more below", len(posts)-end)) + "\n")
	}
	return b.String()
}

const editTolerance = time.Second

func (m Model) renderPost(p domain.Post, width int) string {
	now := m.now()
	header := common.AuthorStyle.Render(p.Author)
	if p.IsAuthor {
		header += common.OwnBadgeStyle.Render("(you)")
	}
	ts := common.RelativeTime(p.CreatedAt, now)
	// Timestamps differ in precision, so a fresh post can look edited by a few ms.
	if p.EditedAt.Sub(p.CreatedAt) > editTolerance {
		ts += " · edited"
	}
	header += "  " + common.TimestampStyle.Render(ts)

	body := common.ContentStyle.Render(common.Wrap(p.Content, width))

	var footer []string
	if m.page.Authenticated {
		heart := "♡"
		if p.Liked {
			heart = common.LikedStyle.Render("♥")
		}
		footer = append(footer, fmt.Sprintf("%s %d", heart, p.Likes))
	}
	if p.IsAuthor {
		footer = append(footer, common.TimestampStyle.Render("e edit · d delete"))
	}

	parts := []string{header, body}
	if len(footer) > 0 {
		parts = append(parts, strings.Join(footer, "   "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderPager() string {
	if m.page.NumPages <= 1 && !m.page.HasNext && !m.page.HasPrevious {
		return ""
	}
	var parts []string
	if m.page.HasPrevious {
		parts = append(parts, "← b previous")
	}
	if m.page.NumPages > 1 {
		parts = append(parts, fmt.Sprintf("Page %d of %d", m.page.Number, m.page.NumPages))
	}
	if m.page.HasNext {
		parts = append(parts, "n next →")
	}
	return "  " + strings.Join(parts, "   ")
}

func (m Model) renderHints() string {
	if !m.showHints {
		return "? keys · q quit"
	}
	hints := []string{"j/k move", "a all", "f following", "u profile", "r refresh"}
	if m.viewer.Authenticated {
		hints = append(hints, "U my profile")
	}
	if m.CanFollow() {
		hints = append(hints, "F follow")
	}
	if m.page.Authenticated {
		hints = append(hints, "l like")
	}
	if m.CanCompose() {
		hints = append(hints, "p/P new post")
	}
	hints = append(hints, "? hide", "q quit")
	return strings.Join(hints, " · ")
}
