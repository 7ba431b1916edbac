package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/CrestNiraj12/netterm/domain"
)

func TestPostService_CreateSendsJSONBody(t *testing.T) {
	fake, srv := newFakeService(t)
	var got map[string]string
	fake.handle("/new_post", requireLogin(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		writeJSON(w, http.StatusCreated, postJSON(11, "alice", got["post"]))
	}))
	svc := NewPostService(signedIn(t, srv))

	post, err := svc.Create(context.Background(), "hello network")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got["post"] != "hello network" {
		t.Fatalf("expected post field in body, got %#v", got)
	}
	if post.ID != 11 || post.Content != "hello network" || !post.IsAuthor {
		t.Fatalf("unexpected post: %#v", post)
	}
}

func TestPostService_EmptyContentNeverSent(t *testing.T) {
	fake, srv := newFakeService(t)
	svc := NewPostService(signedIn(t, srv))

	if _, err := svc.Create(context.Background(), " \n\t"); !errors.Is(err, domain.ErrEmptyPost) {
		t.Fatalf("expected ErrEmptyPost, got %v", err)
	}
	if _, err := svc.Edit(context.Background(), 3, ""); !errors.Is(err, domain.ErrEmptyPost) {
		t.Fatalf("expected ErrEmptyPost on edit, got %v", err)
	}
	if fake.lastRequest() != nil {
		t.Fatalf("no request may be issued for empty content")
	}
}

func TestPostService_EditDeleteLike(t *testing.T) {
	fake, srv := newFakeService(t)
	fake.handle("/edit/4", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, postJSON(4, "alice", body["post"]))
	})
	fake.handle("/delete/4", requireLogin(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully."})
	}))
	fake.handle("/like/4", requireLogin(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"likes": 9, "liked": false})
	}))
	svc := NewPostService(signedIn(t, srv))
	ctx := context.Background()

	post, err := svc.Edit(ctx, 4, "fixed typo")
	if err != nil || post.Content != "fixed typo" {
		t.Fatalf("edit failed: %#v %v", post, err)
	}
	like, err := svc.ToggleLike(ctx, 4)
	if err != nil || like != (domain.LikeState{Likes: 9, Liked: false}) {
		t.Fatalf("like failed: %#v %v", like, err)
	}
	if err := svc.Delete(ctx, 4); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestPostService_DeleteNotAuthor(t *testing.T) {
	fake, srv := newFakeService(t)
	fake.handle("/delete/8", requireLogin(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "User must be author of post"})
	}))
	svc := NewPostService(signedIn(t, srv))

	err := svc.Delete(context.Background(), 8)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAccountService_ProfileAndToggleFollow(t *testing.T) {
	fake, srv := newFakeService(t)
	fake.handle("/profile/", requireLogin(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile/bob smith" {
			t.Fatalf("unexpected profile path: %q", r.URL.Path)
		}
		resp := pageJSON("", true, postJSON(1, "bob smith", "hey"))
		resp["is_following"] = true
		resp["followers_count"] = 4
		resp["following_count"] = 2
		resp["profile_username"] = "bob smith"
		writeJSON(w, http.StatusOK, resp)
	}))
	fake.handle("/follow/", requireLogin(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/follow/bob smith" {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		writeJSON(w, http.StatusOK, map[string]any{"is_following": false, "followers_count": 3, "following_count": 2})
	}))
	svc := NewAccountService(signedIn(t, srv))

	prof, err := svc.Profile(context.Background(), "bob smith")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if fake.lastRequest().URL.EscapedPath() != "/profile/bob%20smith" {
		t.Fatalf("username must be path-escaped: %s", fake.lastRequest().URL.EscapedPath())
	}
	if prof.Username != "bob smith" || !prof.IsFollowing || prof.Followers != 4 || prof.Following != 2 || len(prof.Page.Posts) != 1 {
		t.Fatalf("unexpected profile: %#v", prof)
	}

	st, err := svc.ToggleFollow(context.Background(), "bob smith")
	if err != nil {
		t.Fatalf("follow failed: %v", err)
	}
	if st != (domain.FollowState{IsFollowing: false, Followers: 3, Following: 2}) {
		t.Fatalf("unexpected follow state: %#v", st)
	}
}

func TestAccountService_FollowSelfError(t *testing.T) {
	fake, srv := newFakeService(t)
	fake.handle("/follow/alice", requireLogin(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Users cannot follow themselves."})
	}))
	svc := NewAccountService(signedIn(t, srv))

	_, err := svc.ToggleFollow(context.Background(), "alice")
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Users cannot follow themselves." {
		t.Fatalf("expected service message, got %v", err)
	}
	if _, err := svc.ToggleFollow(context.Background(), " "); err == nil {
		t.Fatalf("expected error for blank username")
	}
}
