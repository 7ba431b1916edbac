package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/CrestNiraj12/netterm/domain"
)

// Client is a thin HTTP wrapper for the network service.
// It owns the cookie jar that carries the session and injects the CSRF
// token on every state-changing request.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	log     zerolog.Logger

	mu   sync.Mutex
	csrf string // Cached hidden-field token; cleared on 403.
}

// NewClient creates a client for the service at baseURL.
// Redirects are never followed: a redirect to the login page is how the
// service reports a missing session.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		baseURL: u,
		jar:     jar,
		log:     log,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// RestoreCookies loads previously saved cookies into the jar.
func (c *Client) RestoreCookies(cookies map[string]string) {
	list := make([]*http.Cookie, 0, len(cookies))
	for name, value := range cookies {
		if strings.TrimSpace(value) == "" {
			continue
		}
		list = append(list, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	c.jar.SetCookies(c.baseURL, list)
}

// Cookies returns the jar's cookies for the service as name/value pairs.
func (c *Client) Cookies() map[string]string {
	out := make(map[string]string)
	for _, ck := range c.jar.Cookies(c.baseURL) {
		out[ck.Name] = ck.Value
	}
	return out
}

// ClearCookies drops every cookie for the service and the cached token.
func (c *Client) ClearCookies() {
	expired := make([]*http.Cookie, 0)
	for _, ck := range c.jar.Cookies(c.baseURL) {
		expired = append(expired, &http.Cookie{Name: ck.Name, Path: "/", MaxAge: -1})
	}
	c.jar.SetCookies(c.baseURL, expired)
	c.forgetCSRF()
}

// GetJSON performs a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return err
	}
	return decode(data, out)
}

// PostJSON performs a CSRF-protected POST with an optional JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON performs a CSRF-protected PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, in, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

// DeleteJSON performs a CSRF-protected DELETE.
func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.sendJSON(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	data, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	return decode(data, out)
}

// rawResponse is what page-level calls (login, register) need to inspect.
type rawResponse struct {
	Status   int
	Location string
	Body     []byte
}

// getPage fetches an HTML page without treating redirects as errors.
func (c *Client) getPage(ctx context.Context, path string) (rawResponse, error) {
	return c.roundTrip(ctx, http.MethodGet, path, nil, "", false)
}

// postForm submits an urlencoded form the way a browser would, including the
// hidden csrfmiddlewaretoken field already present in form.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) (rawResponse, error) {
	return c.roundTrip(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", true)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	mutating := method != http.MethodGet
	resp, err := c.roundTrip(ctx, method, path, body, contentType, mutating)
	if err != nil {
		return nil, err
	}
	if err := c.checkStatus(method, path, resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, mutating bool) (rawResponse, error) {
	target := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html;q=0.9")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if mutating {
		token, err := c.CSRFToken(ctx)
		if err != nil {
			return rawResponse{}, err
		}
		req.Header.Set("X-CSRFToken", token)
		req.Header.Set("Referer", c.baseURL.String()+"/")
		req.Header.Set("Origin", c.origin())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return rawResponse{}, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return rawResponse{}, fmt.Errorf("reading response: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("request completed")

	return rawResponse{
		Status:   resp.StatusCode,
		Location: resp.Header.Get("Location"),
		Body:     data,
	}, nil
}

func (c *Client) checkStatus(method, path string, resp rawResponse) error {
	switch {
	case resp.Status >= 200 && resp.Status < 300:
		return nil
	case resp.Status >= 300 && resp.Status < 400:
		if isLoginRedirect(resp.Location) {
			return &domain.APIError{Status: http.StatusUnauthorized}
		}
		return fmt.Errorf("API %s %s redirected to %s", method, path, resp.Location)
	}

	if resp.Status == http.StatusForbidden {
		// A rejected token must be re-read before the next write.
		c.forgetCSRF()
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err == nil && payload.Error != "" {
		return &domain.APIError{Status: resp.Status, Message: payload.Error}
	}
	// No service message: callers fall back to their own wording.
	return &domain.APIError{Status: resp.Status}
}

func (c *Client) origin() string {
	return c.baseURL.Scheme + "://" + c.baseURL.Host
}

func isLoginRedirect(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return strings.TrimRight(u.Path, "/") == "/login"
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// IsUnauthorized reports whether err means the session is missing.
func IsUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
