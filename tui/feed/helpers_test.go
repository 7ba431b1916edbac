package feed

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/netterm/domain"
)

type fetchCall struct {
	feed     domain.Feed
	page     int
	username string
}

type stubTimeline struct {
	mu    sync.Mutex
	calls []fetchCall
	pages map[domain.Feed]domain.Page
	errs  map[domain.Feed]error
}

func newStubTimeline() *stubTimeline {
	return &stubTimeline{pages: map[domain.Feed]domain.Page{}, errs: map[domain.Feed]error{}}
}

func (s *stubTimeline) record(feed domain.Feed, page int, username string) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fetchCall{feed: feed, page: page, username: username})
	if err := s.errs[feed]; err != nil {
		return domain.Page{}, err
	}
	p := s.pages[feed]
	p.Feed = feed
	if p.Number == 0 {
		p.Number = page
	}
	return p, nil
}

func (s *stubTimeline) FetchPosts(_ context.Context, feed domain.Feed, page int, username string) (domain.Page, error) {
	return s.record(feed, page, username)
}

func (s *stubTimeline) FetchFollowing(_ context.Context, page int) (domain.Page, error) {
	return s.record(domain.FeedFollowing, page, "")
}

func (s *stubTimeline) lastCall() fetchCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return fetchCall{}
	}
	return s.calls[len(s.calls)-1]
}

type stubPosts struct {
	like    domain.LikeState
	likeErr error
	deleted []int64
	delErr  error
}

func (s *stubPosts) Create(context.Context, string) (domain.Post, error) { return domain.Post{}, nil }
func (s *stubPosts) Edit(_ context.Context, id int64, content string) (domain.Post, error) {
	return domain.Post{ID: id, Content: content}, nil
}
func (s *stubPosts) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return s.delErr
}
func (s *stubPosts) ToggleLike(context.Context, int64) (domain.LikeState, error) {
	return s.like, s.likeErr
}

type stubAccount struct {
	profile  domain.Profile
	follow   domain.FollowState
	followed []string
}

func (s *stubAccount) Profile(_ context.Context, username string) (domain.Profile, error) {
	p := s.profile
	if p.Username == "" {
		p.Username = username
	}
	return p, nil
}

func (s *stubAccount) ToggleFollow(_ context.Context, username string) (domain.FollowState, error) {
	s.followed = append(s.followed, username)
	return s.follow, nil
}

type fixture struct {
	timeline *stubTimeline
	posts    *stubPosts
	account  *stubAccount
}

func newFixture() *fixture {
	return &fixture{timeline: newStubTimeline(), posts: &stubPosts{}, account: &stubAccount{}}
}

func (f *fixture) model(start domain.Feed) Model {
	m := New(Deps{
		Timeline: f.timeline,
		Post:     f.posts,
		Account:  f.account,
		Log:      zerolog.Nop(),
	}, start)
	m.now = func() time.Time { return testNow }
	return m
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func makePost(id int64, author string, isAuthor bool) domain.Post {
	return domain.Post{
		ID:        id,
		Author:    author,
		Content:   "post " + author,
		CreatedAt: testNow.Add(-3 * time.Minute),
		Likes:     1,
		IsAuthor:  isAuthor,
	}
}

// loaded returns m with page applied as the current all-feed page.
func loaded(m Model, page domain.Page) Model {
	if page.Feed == "" {
		page.Feed = domain.FeedAll
	}
	m, _ = m.Update(PageLoadedMsg{Feed: page.Feed, Page: page, ReqSeq: m.reqSeq})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds the resulting message back into m.
func run(m Model, cmd tea.Cmd) (Model, tea.Msg) {
	if cmd == nil {
		return m, nil
	}
	msg := cmd()
	m, _ = m.Update(msg)
	return m, msg
}
