package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/CrestNiraj12/netterm/domain"
	"github.com/CrestNiraj12/netterm/infra/auth"
)

// sessionService implements app.SessionService by driving the service's
// login, register, and logout pages the way a browser does, and keeps the
// resulting cookies in a SessionStore.
type sessionService struct {
	client *Client
	store  auth.SessionStore
	log    zerolog.Logger
}

// NewSessionService creates a SessionService persisting into store.
func NewSessionService(client *Client, store auth.SessionStore, log zerolog.Logger) *sessionService {
	return &sessionService{client: client, store: store, log: log}
}

// Restore loads a stored session into the client's cookie jar.
// A missing session is not an error; the client simply browses signed out.
func (s *sessionService) Restore() (auth.Session, error) {
	sess, err := s.store.Load()
	if errors.Is(err, auth.ErrNoSession) {
		return auth.Session{}, nil
	}
	if err != nil {
		return auth.Session{}, err
	}
	s.client.RestoreCookies(sess.Cookies)
	return sess, nil
}

func (s *sessionService) Viewer(ctx context.Context) (domain.Viewer, error) {
	resp, err := s.client.getPage(ctx, "/")
	if err != nil {
		return domain.Viewer{}, fmt.Errorf("loading index: %w", err)
	}
	if resp.Status != http.StatusOK {
		return domain.Viewer{}, fmt.Errorf("loading index: status %d", resp.Status)
	}
	page := parsePage(resp.Body)
	if page.CSRFToken != "" {
		s.client.setCSRF(page.CSRFToken)
	}
	return domain.Viewer{
		Username:      page.Username,
		Authenticated: page.Username != "",
	}, nil
}

func (s *sessionService) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	if err := s.submit(ctx, "/login", form); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, err.Error())
	}
	s.log.Info().Str("user", username).Msg("signed in")
	return s.persist(username)
}

func (s *sessionService) Register(ctx context.Context, username, email, password, confirmation string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	if password != confirmation {
		return errors.New("Passwords must match.")
	}
	form := url.Values{}
	form.Set("username", username)
	form.Set("email", strings.TrimSpace(email))
	form.Set("password", password)
	form.Set("confirmation", confirmation)
	if err := s.submit(ctx, "/register", form); err != nil {
		return err
	}
	s.log.Info().Str("user", username).Msg("registered")
	return s.persist(username)
}

func (s *sessionService) Logout(ctx context.Context) error {
	if _, err := s.client.getPage(ctx, "/logout"); err != nil {
		s.log.Warn().Err(err).Msg("server logout failed; clearing local session anyway")
	}
	s.client.ClearCookies()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// submit loads the form page for its token, posts form to it, and treats a
// redirect as success. Anything else is a rejection whose message comes from
// the re-rendered page.
func (s *sessionService) submit(ctx context.Context, path string, form url.Values) error {
	page, err := s.client.getPage(ctx, path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	token := parsePage(page.Body).CSRFToken
	if token == "" {
		token = s.client.Cookies()[auth.CSRFCookie]
	}
	if token == "" {
		return domain.ErrCSRF
	}
	s.client.setCSRF(token)
	form.Set(csrfField, token)

	resp, err := s.client.postForm(ctx, path, form)
	if err != nil {
		return fmt.Errorf("submitting %s: %w", path, err)
	}
	// The service rotates the token when the session changes.
	s.client.forgetCSRF()
	if resp.Status >= 300 && resp.Status < 400 {
		return nil
	}
	msg := parsePage(resp.Body).Message
	if msg == "" {
		msg = fmt.Sprintf("%s rejected (status %d)", strings.TrimPrefix(path, "/"), resp.Status)
	}
	return errors.New(msg)
}

func (s *sessionService) persist(username string) error {
	cookies := s.client.Cookies()
	sess := auth.Session{Username: username, Cookies: cookies}
	if !sess.Valid() {
		return errors.New("service did not issue a session cookie")
	}
	if err := s.store.Save(sess); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
