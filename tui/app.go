package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/netterm/app"
	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/infra/config"
	"github.com/CrestNiraj12/netterm/infra/editor"
	"github.com/CrestNiraj12/netterm/tui/common"
	"github.com/CrestNiraj12/netterm/tui/compose"
	"github.com/CrestNiraj12/netterm/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Timeline    app.TimelineService
	Post        app.PostService
	Account     app.AccountService
	Session     app.SessionService
	Editor      *editor.EnvEditor
	Log         zerolog.Logger
	UIStatePath string      // Empty disables persisting the feed choice.
	StartFeed   domain.Feed // Feed restored from the last run.
}

type activeView int

const (
	feedView activeView = iota
	composeView
)

// App is the root Bubble Tea model. It routes between sub-views.
type App struct {
	deps    Deps
	active  activeView
	feed    feed.Model
	compose compose.Model
	keys    common.KeyMap
	status  string // Transient status message (e.g. "Post published.")
}

// createResultMsg is sent after a new post request.
type createResultMsg struct {
	Post domain.Post
	Err  error
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		active: feedView,
		feed: feed.New(feed.Deps{
			Timeline: deps.Timeline,
			Post:     deps.Post,
			Account:  deps.Account,
			Log:      deps.Log,
		}, deps.StartFeed),
		keys: common.DefaultKeyMap(),
	}
}

// Init starts the first feed fetch and resolves the signed-in user.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.feed.Init(),
		a.loadViewer(),
	)
}

func (a App) loadViewer() tea.Cmd {
	session := a.deps.Session
	log := a.deps.Log
	return func() tea.Msg {
		if session == nil {
			return feed.ViewerMsg{}
		}
		v, err := session.Viewer(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("resolving signed-in user failed")
			return feed.ViewerMsg{}
		}
		return feed.ViewerMsg{Viewer: v}
	}
}

// Update handles messages and routes to the active sub-model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.active != feedView {
			break
		}
		if key.Matches(msg, a.keys.Quit) && (msg.String() == "ctrl+c" || !a.feed.Busy()) {
			return a, tea.Quit
		}
		if a.feed.CanCompose() {
			if key.Matches(msg, a.keys.NewEditor) {
				a.active = composeView
				a.status = ""
				a.compose = compose.NewEditor(a.deps.Editor)
				return a, a.compose.Init()
			}
			if key.Matches(msg, a.keys.NewInline) {
				a.active = composeView
				a.status = ""
				a.compose = compose.NewInline()
				return a, a.compose.Init()
			}
		}
		a.status = ""

	case feed.EditPostMsg:
		a.active = composeView
		a.status = ""
		if msg.UseInline {
			a.compose = compose.NewInlineWithContent(msg.Post.ID, msg.Post.Content)
		} else {
			a.compose = compose.NewEditorWithContent(a.deps.Editor, msg.Post.ID, msg.Post.Content)
		}
		return a, a.compose.Init()

	case compose.DoneMsg:
		a.active = feedView
		return a.handleComposeDone(msg)

	case createResultMsg:
		return a.handleCreateResult(msg)

	case feed.FeedChangedMsg:
		return a, a.saveFeed(msg.Feed)
	}

	return a.delegate(msg)
}

// delegate forwards msg to the sub-models. Keys go to the active view only;
// everything else also reaches the feed so loads finish in the background.
func (a App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	_, isKey := msg.(tea.KeyMsg)

	if a.active == composeView {
		var cmd tea.Cmd
		a.compose, cmd = a.compose.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.active == feedView || !isKey {
		var cmd tea.Cmd
		a.feed, cmd = a.feed.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleComposeDone(msg compose.DoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Cancelled:
		a.status = "Cancelled."
		return a, nil
	case errors.Is(msg.Err, domain.ErrEmptyPost):
		a.feed, _ = a.feed.Update(feed.NoticeMsg{Text: feed.NoticeEmptyPost})
		return a, nil
	case msg.Err != nil:
		a.deps.Log.Error().Err(msg.Err).Msg("composer failed")
		a.status = "Error: " + msg.Err.Error()
		return a, nil
	}

	posts := a.deps.Post
	if msg.IsEdit {
		a.status = "Saving..."
		return a, func() tea.Msg {
			p, err := posts.Edit(context.Background(), msg.PostID, msg.Content)
			return feed.EditResultMsg{ID: msg.PostID, Post: p, Err: err}
		}
	}
	a.status = "Posting..."
	return a, func() tea.Msg {
		p, err := posts.Create(context.Background(), msg.Content)
		return createResultMsg{Post: p, Err: err}
	}
}

func (a App) handleCreateResult(msg createResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.status = ""
		a.deps.Log.Error().Err(msg.Err).Msg("creating post failed")
		notice := feed.NoticeCreateFailed
		var apiErr *domain.APIError
		switch {
		case errors.Is(msg.Err, domain.ErrEmptyPost):
			notice = feed.NoticeEmptyPost
		case errors.As(msg.Err, &apiErr) && apiErr.Message != "":
			notice = apiErr.Message
		}
		a.feed, _ = a.feed.Update(feed.NoticeMsg{Text: notice})
		return a, nil
	}
	a.status = "Post published."
	var cmd tea.Cmd
	a.feed, cmd = a.feed.Update(feed.ShowAllMsg{})
	return a, cmd
}

func (a App) saveFeed(f domain.Feed) tea.Cmd {
	path := a.deps.UIStatePath
	if path == "" {
		return nil
	}
	log := a.deps.Log
	return func() tea.Msg {
		if err := config.SaveUIState(path, config.UIState{Feed: string(f)}); err != nil {
			log.Warn().Err(err).Msg("saving ui state failed")
		}
		return nil
	}
}

// View renders the active sub-model.
func (a App) View() string {
	var s string

	switch a.active {
	case feedView:
		s = a.feed.View()
	case composeView:
		s = a.compose.View()
	}

	if a.status != "" {
		s += "\n" + common.StatusBarStyle.Render(a.status)
	}

	return s
}
