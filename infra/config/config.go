package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "http://127.0.0.1:8000"
	defaultTimeout = 15 * time.Second

	StoreKeyring = "keyring"
	StoreFile    = "file"
)

// Config holds application-level configuration.
type Config struct {
	BaseURL      string        // e.g. "https://network.example"
	StateDir     string        // Directory for logs, UI state, and file sessions
	SessionStore string        // "keyring" or "file"
	LogLevel     string        // debug|info|warn|error
	Timeout      time.Duration // Per-request timeout

	LogPath     string
	UIStatePath string
	SessionPath string
}

// fileConfig is the optional YAML file layout.
type fileConfig struct {
	BaseURL      string `yaml:"base_url"`
	StateDir     string `yaml:"state_dir"`
	SessionStore string `yaml:"session_store"`
	LogLevel     string `yaml:"log_level"`
	Timeout      string `yaml:"timeout"`
}

// Load reads configuration from a .env file, an optional YAML file, and
// environment variables, in increasing order of precedence.
//
//	NETTERM_CONFIG         path to a YAML config file (optional)
//	NETTERM_BASE_URL       service URL (default: http://127.0.0.1:8000)
//	NETTERM_STATE_DIR      state directory (default: ~/.config/netterm)
//	NETTERM_SESSION_STORE  keyring|file (default: keyring)
//	NETTERM_LOG_LEVEL      debug|info|warn|error (default: info)
//	NETTERM_TIMEOUT        request timeout, e.g. 10s (default: 15s)
func Load() (Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	var fc fileConfig
	if path := strings.TrimSpace(os.Getenv("NETTERM_CONFIG")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	base, err := normalizeBaseURL(pick("NETTERM_BASE_URL", fc.BaseURL, defaultBaseURL))
	if err != nil {
		return Config{}, err
	}

	stateDir := pick("NETTERM_STATE_DIR", fc.StateDir, "")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".config", "netterm")
	}

	store := strings.ToLower(pick("NETTERM_SESSION_STORE", fc.SessionStore, StoreKeyring))
	if store != StoreKeyring && store != StoreFile {
		return Config{}, fmt.Errorf("invalid NETTERM_SESSION_STORE %q: want keyring or file", store)
	}

	timeout := defaultTimeout
	if raw := pick("NETTERM_TIMEOUT", fc.Timeout, ""); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return Config{}, fmt.Errorf("invalid NETTERM_TIMEOUT %q", raw)
		}
	}

	return Config{
		BaseURL:      base,
		StateDir:     stateDir,
		SessionStore: store,
		LogLevel:     strings.ToLower(pick("NETTERM_LOG_LEVEL", fc.LogLevel, "info")),
		Timeout:      timeout,
		LogPath:      filepath.Join(stateDir, "netterm.log"),
		UIStatePath:  filepath.Join(stateDir, "ui_state.json"),
		SessionPath:  filepath.Join(stateDir, "session.json"),
	}, nil
}

func pick(env, fromFile, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	if v := strings.TrimSpace(fromFile); v != "" {
		return v
	}
	return fallback
}

// normalizeBaseURL requires an absolute URL; plain http is only accepted for
// loopback hosts so session cookies never cross the network in clear text.
func normalizeBaseURL(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("invalid NETTERM_BASE_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", errors.New("invalid NETTERM_BASE_URL: http is only allowed for localhost")
		}
	default:
		return "", fmt.Errorf("invalid NETTERM_BASE_URL: unsupported scheme %q", parsed.Scheme)
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
