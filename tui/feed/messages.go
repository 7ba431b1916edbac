package feed

import "github.com/CrestNiraj12/netterm/domain"

// --- Messages ---

// PageLoadedMsg is sent when a page of posts arrives.
type PageLoadedMsg struct {
	Feed     domain.Feed
	Username string // Profile owner for FeedProfile.
	Page     domain.Page
	ReqSeq   int
}

// PageErrorMsg is sent when a page fetch fails.
type PageErrorMsg struct {
	Feed   domain.Feed
	Err    error
	ReqSeq int
}

// ProfileLoadedMsg carries a profile header and its first page of posts.
type ProfileLoadedMsg struct {
	Profile domain.Profile
	ReqSeq  int
}

// LikeResultMsg is sent after a like toggle.
type LikeResultMsg struct {
	ID    int64
	State domain.LikeState
	Err   error
}

// FollowResultMsg is sent after a follow toggle.
type FollowResultMsg struct {
	Username string
	State    domain.FollowState
	Err      error
}

// DeleteResultMsg is sent after a delete attempt.
type DeleteResultMsg struct {
	ID  int64
	Err error
}

// EditPostMsg asks the root model to open the composer on a post.
type EditPostMsg struct {
	Post      domain.Post
	UseInline bool
}

// EditResultMsg is delivered by the root model after an edit request.
type EditResultMsg struct {
	ID   int64
	Post domain.Post
	Err  error
}

// ShowAllMsg switches to the all feed, page 1.
type ShowAllMsg struct{}

// NoticeMsg raises a blocking notice.
type NoticeMsg struct {
	Text string
}

// ViewerMsg tells the feed who is signed in.
type ViewerMsg struct {
	Viewer domain.Viewer
}

// FeedChangedMsg is emitted when the displayed feed kind changes.
type FeedChangedMsg struct {
	Feed domain.Feed
}
