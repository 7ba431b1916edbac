package feed

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/netterm/app"
	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/tui/common"
)

// Blocking notices, shown until the next key press.
const (
	NoticeFollowingLogin = "Please log in to view posts from users you follow."
	NoticeEmptyPost      = "Please enter some content for your post."
	NoticeCreateFailed   = "Failed to create post. Please try again."
)

// Deps holds the services the feed needs.
type Deps struct {
	Timeline app.TimelineService
	Post     app.PostService
	Account  app.AccountService
	Log      zerolog.Logger
}

// Model holds the state for the posts and profile views.
type Model struct {
	timeline app.TimelineService
	posts    app.PostService
	account  app.AccountService
	log      zerolog.Logger
	keys     common.KeyMap
	spinner  spinner.Model

	viewer domain.Viewer

	feed        domain.Feed
	profileUser string          // Set while a profile is shown.
	profile     *domain.Profile // Header of the shown profile.
	page        domain.Page
	cursor      int
	startIndex  int

	startFeed     domain.Feed // Feed requested at startup.
	loaded        bool        // First page has arrived.
	loading       bool
	reqSeq        int
	err           error
	notice        string
	status        string
	confirmDelete bool
	showHints     bool

	width  int
	height int
	now    func() time.Time
}

// New creates a feed model that loads start (all or following) on Init.
func New(deps Deps, start domain.Feed) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	if start != domain.FeedFollowing {
		start = domain.FeedAll
	}
	return Model{
		timeline:  deps.Timeline,
		posts:     deps.Post,
		account:   deps.Account,
		log:       deps.Log,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		feed:      start,
		startFeed: start,
		loading:   true,
		reqSeq:    1,
		now:       time.Now,
	}
}

// Init starts the initial page fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPage(m.startFeed, 1, "", m.reqSeq),
		m.spinner.Tick,
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Feed returns the feed kind currently displayed.
func (m Model) Feed() domain.Feed {
	return m.feed
}

// Posts returns the posts on the current page.
func (m Model) Posts() []domain.Post {
	return m.page.Posts
}

// PageInfo returns the current page metadata.
func (m Model) PageInfo() domain.Page {
	return m.page
}

// Profile returns the shown profile header, if a profile is displayed.
func (m Model) Profile() (domain.Profile, bool) {
	if m.profile == nil {
		return domain.Profile{}, false
	}
	return *m.profile, true
}

// Loading returns whether a page fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Notice returns the blocking notice, if any.
func (m Model) Notice() string {
	return m.notice
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// SelectedPost returns the currently highlighted post, if any.
func (m Model) SelectedPost() (domain.Post, bool) {
	if len(m.page.Posts) == 0 || m.cursor >= len(m.page.Posts) {
		return domain.Post{}, false
	}
	return m.page.Posts[m.cursor], true
}

// CanCompose reports whether a new post may be started: the session is
// signed in and the posts view (not a profile) is shown.
func (m Model) CanCompose() bool {
	return m.viewer.Authenticated && m.feed != domain.FeedProfile && m.notice == "" && !m.confirmDelete
}

// Busy reports whether the feed is capturing keys (notice or confirmation),
// so global bindings must not fire.
func (m Model) Busy() bool {
	return m.notice != "" || m.confirmDelete
}
