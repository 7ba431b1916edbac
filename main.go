package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/netterm/app"
	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/infra/auth"
	"github.com/CrestNiraj12/netterm/infra/config"
	"github.com/CrestNiraj12/netterm/infra/editor"
	"github.com/CrestNiraj12/netterm/infra/logging"
	"github.com/CrestNiraj12/netterm/infra/network"
	"github.com/CrestNiraj12/netterm/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// sessionManager is the session service plus restoring stored cookies.
type sessionManager interface {
	app.SessionService
	Restore() (auth.Session, error)
}

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg      config.Config
	log      zerolog.Logger
	closer   io.Closer
	timeline app.TimelineService
	posts    app.PostService
	account  app.AccountService
	session  sessionManager
	composer app.Composer
	editor   *editor.EnvEditor
}

func (e *env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}

// setup loads configuration, opens the log, and wires the network services
// with any stored session already in the cookie jar.
func setup() (*env, error) {
	// 1. Load config from .env, optional YAML file, and environment.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// 2. Logging goes to a file; the terminal belongs to the UI.
	log, closer, err := logging.New(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	// 3. Build infrastructure.
	client, err := network.NewClient(cfg.BaseURL, cfg.Timeout, log)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	store := auth.NewStore(cfg.SessionStore, cfg.SessionPath, cfg.BaseURL)
	sessions := network.NewSessionService(client, store, log)
	if sess, err := sessions.Restore(); err != nil {
		log.Warn().Err(err).Msg("restoring session failed; continuing signed out")
	} else if sess.Username != "" {
		log.Debug().Str("user", sess.Username).Msg("session restored")
	}

	// 4. Services (concrete types satisfy app.* interfaces).
	ed := editor.NewEnvEditor()
	return &env{
		cfg:      cfg,
		log:      log,
		closer:   closer,
		timeline: network.NewTimelineService(client),
		posts:    network.NewPostService(client),
		account:  network.NewAccountService(client),
		session:  sessions,
		composer: ed,
		editor:   ed,
	}, nil
}

// cli carries the pieces commands need, replaceable in tests.
type cli struct {
	load func() (*env, error)
	in   io.Reader
	out  io.Writer

	reader *bufio.Reader // Wraps in; shared across prompts.
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "netterm",
		Short: "A terminal client for the network social service",
		Long: `netterm browses and writes posts on a network service from the terminal.

Run without a subcommand to open the interactive feed. Configuration comes
from NETTERM_* environment variables, a .env file, or the YAML file named by
NETTERM_CONFIG.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Open the interactive feed (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.runTUI()
			},
		},
		c.loginCmd(),
		c.logoutCmd(),
		c.registerCmd(),
		c.postCmd(),
		c.postsCmd(),
		c.versionCmd(),
	)
	return root
}

func (c *cli) runTUI() error {
	e, err := c.load()
	if err != nil {
		return err
	}
	defer e.Close()

	uiState, err := config.LoadUIState(e.cfg.UIStatePath)
	if err != nil {
		e.log.Warn().Err(err).Msg("ignoring unreadable ui state")
	}

	rootModel := tui.NewApp(tui.Deps{
		Timeline:    e.timeline,
		Post:        e.posts,
		Account:     e.account,
		Session:     e.session,
		Editor:      e.editor,
		Log:         e.log,
		UIStatePath: e.cfg.UIStatePath,
		StartFeed:   domain.ParseFeed(uiState.Feed),
	})

	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("netterm: %w", err)
	}
	return nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v, cm, d := resolvedRuntimeVersionInfo(version, commit, date)
			fmt.Fprintf(c.out, "netterm %s\ncommit: %s\nbuilt: %s\n", v, cm, d)
		},
	}
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func main() {
	c := &cli{load: setup, in: os.Stdin, out: os.Stdout}
	if err := newRootCmd(c).Execute(); err != nil {
		os.Exit(1)
	}
}
