package feed

import (
	"errors"
	"strings"
	"testing"

	"github.com/CrestNiraj12/netterm/domain"
)

func TestLike_HiddenWhenSignedOut(t *testing.T) {
	f := newFixture()
	m := loaded(f.model(domain.FeedAll), domain.Page{Posts: []domain.Post{makePost(1, "alice", false)}})

	if _, cmd := m.Update(keyMsg("l")); cmd != nil {
		t.Fatalf("like must be inert when not authenticated")
	}
	if strings.Contains(m.View(), "♡") {
		t.Fatalf("like control must be hidden when not authenticated")
	}
}

func TestLike_ResponseOverwritesCounts(t *testing.T) {
	f := newFixture()
	f.posts.like = domain.LikeState{Likes: 7, Liked: true}
	m := loaded(f.model(domain.FeedAll), domain.Page{Authenticated: true,
		Posts: []domain.Post{makePost(1, "alice", false), makePost(2, "bob", false)}})

	m, cmd := m.Update(keyMsg("l"))
	m, _ = run(m, cmd)
	if p := m.Posts()[0]; p.Likes != 7 || !p.Liked {
		t.Fatalf("expected server like state, got %#v", p)
	}
	if p := m.Posts()[1]; p.Likes != 1 {
		t.Fatalf("other rows must be untouched, got %#v", p)
	}
}

func TestLike_FailureKeepsState(t *testing.T) {
	f := newFixture()
	f.posts.likeErr = errors.New("boom")
	m := loaded(f.model(domain.FeedAll), domain.Page{Authenticated: true,
		Posts: []domain.Post{makePost(1, "alice", false)}})

	m, cmd := m.Update(keyMsg("l"))
	m, _ = run(m, cmd)
	if p := m.Posts()[0]; p.Likes != 1 || p.Liked {
		t.Fatalf("failed like must not change counts: %#v", p)
	}
}

func TestDelete_ConfirmThenRemoveRow(t *testing.T) {
	f := newFixture()
	m := loaded(f.model(domain.FeedAll), domain.Page{Authenticated: true,
		Posts: []domain.Post{makePost(1, "me", true), makePost(2, "bob", false)}})

	m, _ = m.Update(keyMsg("d"))
	if !m.Busy() || !strings.Contains(m.View(), "Are you sure you want to delete this post?") {
		t.Fatalf("expected delete confirmation")
	}
	m, cmd := m.Update(keyMsg("y"))
	m, _ = run(m, cmd)
	if len(f.posts.deleted) != 1 || f.posts.deleted[0] != 1 {
		t.Fatalf("expected delete request for post 1, got %v", f.posts.deleted)
	}
	if len(m.Posts()) != 1 || m.Posts()[0].ID != 2 {
		t.Fatalf("expected only the deleted row removed, got %#v", m.Posts())
	}
}

func TestDelete_CancelAndNonAuthor(t *testing.T) {
	f := newFixture()
	m := loaded(f.model(domain.FeedAll), domain.Page{Authenticated: true,
		Posts: []domain.Post{makePost(1, "me", true), makePost(2, "bob", false)}})

	m, _ = m.Update(keyMsg("d"))
	m, cmd := m.Update(keyMsg("n"))
	if cmd != nil || m.Busy() {
		t.Fatalf("n must cancel without a request")
	}

	m, _ = m.Update(keyMsg("j"))
	if m.Cursor() != 1 {
		t.Fatalf("expected cursor on second row")
	}
	m, _ = m.Update(keyMsg("d"))
	if m.Busy() {
		t.Fatalf("delete must be unavailable on other users' posts")
	}
	if len(f.posts.deleted) != 0 {
		t.Fatalf("no delete request expected")
	}
}

func TestDelete_FailureKeepsRow(t *testing.T) {
	f := newFixture()
	m := loaded(f.model(domain.FeedAll), domain.Page{Posts: []domain.Post{makePost(1, "me", true)}})
	m, _ = m.Update(DeleteResultMsg{ID: 1, Err: errors.New("boom")})
	if len(m.Posts()) != 1 {
		t.Fatalf("failed delete must keep the row")
	}
}

func TestEdit_OnlyForAuthor(t *testing.T) {
	f := newFixture()
	m := loaded(f.model(domain.FeedAll), domain.Page{Posts: []domain.Post{makePost(1, "bob", false), makePost(2, "me", true)}})

	if _, cmd := m.Update(keyMsg("e")); cmd != nil {
		t.Fatalf("edit must be unavailable on other users' posts")
	}
	m, _ = m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("E"))
	if cmd == nil {
		t.Fatalf("expected edit request for own post")
	}
	msg, ok := cmd().(EditPostMsg)
	if !ok || msg.Post.ID != 2 || !msg.UseInline {
		t.Fatalf("unexpected edit message: %#v", msg)
	}
}

func TestEditResult_SuccessReplacesOnlyThatRow(t *testing.T) {
	f := newFixture()
	m := loaded(f.model(domain.FeedAll), domain.Page{Posts: []domain.Post{makePost(1, "me", true), makePost(2, "me", true)}})

	m, cmd := m.Update(EditResultMsg{ID: 2, Post: domain.Post{ID: 2, Content: "updated"}})
	if cmd != nil {
		t.Fatalf("successful edit must not reload")
	}
	if m.Posts()[1].Content != "updated" || m.Posts()[0].Content != "post me" {
		t.Fatalf("unexpected contents: %#v", m.Posts())
	}
}

func TestEditResult_FailureReloadsAllFirstPage(t *testing.T) {
	f := newFixture()
	m := loaded(f.model(domain.FeedAll), domain.Page{Number: 3, NumPages: 3, Posts: []domain.Post{makePost(1, "me", true)}})

	m, cmd := m.Update(EditResultMsg{ID: 1, Err: errors.New("boom")})
	if cmd == nil || !m.Loading() {
		t.Fatalf("expected reload after failed edit")
	}
	_, _ = run(m, cmd)
	if got := f.timeline.lastCall(); got.feed != domain.FeedAll || got.page != 1 {
		t.Fatalf("expected all page 1 reload, got %#v", got)
	}
}
