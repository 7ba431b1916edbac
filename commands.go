package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/tui/common"
	"github.com/CrestNiraj12/netterm/tui/feed"
)

func (c *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and remember the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.load()
			if err != nil {
				return err
			}
			defer e.Close()

			username, err := c.argOrPrompt(args, "Username: ")
			if err != nil {
				return err
			}
			password, err := c.password("Password: ")
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			if err := e.session.Login(cmd.Context(), username, password); err != nil {
				e.log.Error().Err(err).Str("user", username).Msg("login failed")
				return err
			}
			fmt.Fprintf(c.out, "Signed in as %s.\n", username)
			return nil
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := c.load()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Signed out.")
			return nil
		},
	}
}

func (c *cli) registerCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "register [username]",
		Short: "Create an account and sign in",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.load()
			if err != nil {
				return err
			}
			defer e.Close()

			username, err := c.argOrPrompt(args, "Username: ")
			if err != nil {
				return err
			}
			if email == "" {
				if email, err = c.prompt("Email: "); err != nil {
					return err
				}
			}
			password, err := c.password("Password: ")
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			confirmation, err := c.password("Confirm password: ")
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			if err := e.session.Register(cmd.Context(), username, email, password, confirmation); err != nil {
				e.log.Error().Err(err).Str("user", username).Msg("register failed")
				return err
			}
			fmt.Fprintf(c.out, "Registered and signed in as %s.\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address for the new account")
	return cmd
}

func (c *cli) postCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post [text...]",
		Short: "Publish a post (opens $EDITOR when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.load()
			if err != nil {
				return err
			}
			defer e.Close()

			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" && e.composer != nil {
				if content, err = e.composer.Compose(cmd.Context()); err != nil {
					return err
				}
			}
			post, err := e.posts.Create(cmd.Context(), content)
			switch {
			case errors.Is(err, domain.ErrEmptyPost):
				return errors.New(feed.NoticeEmptyPost)
			case err != nil:
				e.log.Error().Err(err).Msg("creating post failed")
				var apiErr *domain.APIError
				if errors.As(err, &apiErr) && apiErr.Message != "" {
					return errors.New(apiErr.Message)
				}
				return errors.New(feed.NoticeCreateFailed)
			}
			if post.ID != 0 {
				fmt.Fprintf(c.out, "Posted #%d.\n", post.ID)
			} else {
				fmt.Fprintln(c.out, "Posted.")
			}
			return nil
		},
	}
}

func (c *cli) postsCmd() *cobra.Command {
	var (
		feedName string
		user     string
		page     int
	)
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Print one page of a feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFeedFlag(feedName, user)
			if err != nil {
				return err
			}
			e, err := c.load()
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := fetchFeedPage(cmd.Context(), e, f, page, user)
			if err != nil {
				if f == domain.FeedFollowing && errors.Is(err, domain.ErrUnauthorized) {
					return errors.New(feed.NoticeFollowingLogin)
				}
				e.log.Error().Err(err).Str("feed", string(f)).Msg("loading posts failed")
				return err
			}
			printPage(c, p, time.Now())
			return nil
		},
	}
	cmd.Flags().StringVar(&feedName, "feed", "all", "feed to show: all, following or profile")
	cmd.Flags().StringVar(&user, "user", "", "profile owner (implies --feed profile)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

// parseFeedFlag validates --feed and --user together.
func parseFeedFlag(name, user string) (domain.Feed, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if user != "" && (name == "" || name == string(domain.FeedAll)) {
		name = string(domain.FeedProfile)
	}
	switch domain.Feed(name) {
	case domain.FeedAll, domain.FeedFollowing:
		return domain.Feed(name), nil
	case domain.FeedProfile:
		if user == "" {
			return "", errors.New("--feed profile needs --user")
		}
		return domain.FeedProfile, nil
	}
	return "", fmt.Errorf("unknown feed %q: want all, following or profile", name)
}

func fetchFeedPage(ctx context.Context, e *env, f domain.Feed, page int, user string) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	if f == domain.FeedFollowing {
		return e.timeline.FetchFollowing(ctx, page)
	}
	return e.timeline.FetchPosts(ctx, f, page, user)
}

func printPage(c *cli, p domain.Page, now time.Time) {
	if len(p.Posts) == 0 {
		switch p.Feed {
		case domain.FeedFollowing:
			fmt.Fprintln(c.out, feed.EmptyFollowing)
		case domain.FeedProfile:
			fmt.Fprintln(c.out, feed.EmptyProfile)
		default:
			fmt.Fprintln(c.out, feed.EmptyAll)
		}
		return
	}
	for _, post := range p.Posts {
		line := fmt.Sprintf("#%d @%s · %s", post.ID, post.Author, common.RelativeTime(post.CreatedAt, now))
		if p.Authenticated {
			heart := "♡"
			if post.Liked {
				heart = "♥"
			}
			line += fmt.Sprintf(" · %s %d", heart, post.Likes)
		}
		fmt.Fprintln(c.out, line)
		for _, ln := range strings.Split(common.Wrap(post.Content, 76), "\n") {
			fmt.Fprintln(c.out, "  "+ln)
		}
		fmt.Fprintln(c.out)
	}
	if p.NumPages > 1 {
		fmt.Fprintf(c.out, "Page %d of %d\n", p.Number, p.NumPages)
	}
}

func (c *cli) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	return c.prompt(prompt)
}

func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.readLine()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readLine reads one line from the shared stdin reader.
func (c *cli) readLine() (string, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.in)
	}
	line, err := c.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// password reads a password without echo when stdin is a terminal, otherwise
// it takes the next line of piped input.
func (c *cli) password(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(password), nil
	}
	return c.readLine()
}
