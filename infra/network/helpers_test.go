package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

const testToken = "tok-123"

// fakeService mimics the service's CSRF and session behaviour: unsafe
// methods must carry the token from the index page, and API routes wrapped
// with requireLogin redirect to /login without a session cookie.
type fakeService struct {
	t   *testing.T
	mux *http.ServeMux

	mu        sync.Mutex
	token     string
	indexHits int
	requests  []*http.Request
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	f := &fakeService{t: t, mux: http.NewServeMux(), token: testToken}
	f.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		f.mu.Lock()
		f.indexHits++
		tok := f.token
		f.mu.Unlock()
		user := ""
		if c, err := r.Cookie("sessionid"); err == nil {
			user = c.Value
		}
		_, _ = w.Write([]byte(indexHTML(user, tok)))
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Clone(r.Context()))
		tok := f.token
		f.mu.Unlock()
		if r.Method != http.MethodGet && r.Header.Get("X-CSRFToken") != tok {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("<h1>CSRF verification failed.</h1>"))
			return
		}
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeService) handle(pattern string, h http.HandlerFunc) {
	f.mux.HandleFunc(pattern, h)
}

func (f *fakeService) rotateToken(tok string) {
	f.mu.Lock()
	f.token = tok
	f.mu.Unlock()
}

func (f *fakeService) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeService) indexCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexHits
}

func requireLogin(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("sessionid"); err != nil {
			http.Redirect(w, r, "/login?next="+r.URL.Path, http.StatusFound)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func indexHTML(user, token string) string {
	var b strings.Builder
	b.WriteString(`<html><body><nav class="navbar"><a class="navbar-brand" href="#">Network</a><div><ul class="navbar-nav">`)
	if user != "" {
		b.WriteString(`<li class="nav-item"><a class="nav-link profile-link" href="#"><strong>` + user + `</strong></a></li>`)
	} else {
		b.WriteString(`<li class="nav-item"><a class="nav-link" href="/login">Log In</a></li>`)
	}
	b.WriteString(`</ul></div></nav><div class="body">`)
	if user != "" {
		b.WriteString(`<div id="new_post"><form id="create_post"><input type="hidden" name="csrfmiddlewaretoken" value="` + token + `"><textarea name="content"></textarea></form></div>`)
	}
	b.WriteString(`<div id="all_posts"></div></div></body></html>`)
	return b.String()
}

func postJSON(id int, author, content string) map[string]any {
	return map[string]any{
		"id":         id,
		"content":    content,
		"created_at": "2025-03-01T10:00:00.123456+00:00",
		"edited_at":  "2025-03-01T10:05:00.000Z",
		"author":     author,
		"likes":      2,
		"liked":      true,
		"is_author":  author == "alice",
	}
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func signedIn(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := newTestClient(t, srv)
	c.RestoreCookies(map[string]string{"sessionid": "alice"})
	return c
}
