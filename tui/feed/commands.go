package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/CrestNiraj12/netterm/domain"
)

func (m Model) fetchPage(feed domain.Feed, page int, username string, reqSeq int) tea.Cmd {
	timeline := m.timeline
	return func() tea.Msg {
		var (
			p   domain.Page
			err error
		)
		ctx := context.Background()
		if feed == domain.FeedFollowing {
			p, err = timeline.FetchFollowing(ctx, page)
		} else {
			p, err = timeline.FetchPosts(ctx, feed, page, username)
		}
		if err != nil {
			return PageErrorMsg{Feed: feed, Err: err, ReqSeq: reqSeq}
		}
		return PageLoadedMsg{Feed: feed, Username: username, Page: p, ReqSeq: reqSeq}
	}
}

// fetchProfile loads the profile header and the first page of the user's
// posts concurrently.
func (m Model) fetchProfile(username string, reqSeq int) tea.Cmd {
	timeline := m.timeline
	account := m.account
	return func() tea.Msg {
		var (
			profile domain.Profile
			posts   domain.Page
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			profile, err = account.Profile(ctx, username)
			return err
		})
		g.Go(func() error {
			var err error
			posts, err = timeline.FetchPosts(ctx, domain.FeedProfile, 1, username)
			return err
		})
		if err := g.Wait(); err != nil {
			return PageErrorMsg{Feed: domain.FeedProfile, Err: err, ReqSeq: reqSeq}
		}
		if profile.Username == "" {
			profile.Username = username
		}
		posts.Feed = domain.FeedProfile
		profile.Page = posts
		return ProfileLoadedMsg{Profile: profile, ReqSeq: reqSeq}
	}
}

func (m Model) toggleLike(id int64) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		state, err := posts.ToggleLike(context.Background(), id)
		return LikeResultMsg{ID: id, State: state, Err: err}
	}
}

func (m Model) toggleFollow(username string) tea.Cmd {
	account := m.account
	return func() tea.Msg {
		state, err := account.ToggleFollow(context.Background(), username)
		return FollowResultMsg{Username: username, State: state, Err: err}
	}
}

func (m Model) deletePost(id int64) tea.Cmd {
	posts := m.posts
	return func() tea.Msg {
		err := posts.Delete(context.Background(), id)
		return DeleteResultMsg{ID: id, Err: err}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
