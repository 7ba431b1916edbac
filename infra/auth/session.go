package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

// ErrNoSession is returned by a SessionStore that holds nothing.
var ErrNoSession = errors.New("no stored session")

// Session is what survives between runs: who signed in and the cookies the
// service issued for them.
type Session struct {
	Username string            `json:"username"`
	Cookies  map[string]string `json:"cookies"`
}

// Valid reports whether the session carries a session cookie.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Cookies[SessionCookie]) != ""
}

// Cookie names issued by the service.
const (
	SessionCookie = "sessionid"
	CSRFCookie    = "csrftoken"
)

// SessionStore persists a Session.
type SessionStore interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// NewStore returns the store named by kind ("keyring" or "file").
func NewStore(kind, path, baseURL string) SessionStore {
	if kind == "file" {
		return NewFileStore(path)
	}
	return NewKeyringStore(baseURL)
}

// FileStore keeps the session as a 0600 JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a SessionStore backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session from %s: %w", f.path, err)
	}
	return decodeSession(data)
}

func (f *FileStore) Save(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session to %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

const keyringService = "netterm"

// KeyringStore keeps the session in the OS keychain, keyed by service URL so
// sessions for different servers do not collide.
type KeyringStore struct {
	user string
}

// NewKeyringStore creates a SessionStore for the given service base URL.
func NewKeyringStore(baseURL string) *KeyringStore {
	return &KeyringStore{user: "session:" + baseURL}
}

func (k *KeyringStore) Load() (Session, error) {
	data, err := keyring.Get(keyringService, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading keyring: %w", err)
	}
	return decodeSession([]byte(data))
}

func (k *KeyringStore) Save(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := keyring.Set(keyringService, k.user, string(data)); err != nil {
		return fmt.Errorf("writing keyring: %w", err)
	}
	return nil
}

func (k *KeyringStore) Clear() error {
	if err := keyring.Delete(keyringService, k.user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("clearing keyring: %w", err)
	}
	return nil
}

func decodeSession(data []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("parsing session: %w", err)
	}
	if !s.Valid() {
		return Session{}, ErrNoSession
	}
	return s, nil
}
