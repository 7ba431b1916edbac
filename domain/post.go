package domain

import "time"

// Feed names a collection of posts served by the remote service.
type Feed string

const (
	FeedAll       Feed = "all"
	FeedFollowing Feed = "following"
	FeedProfile   Feed = "profile"
)

// ParseFeed maps a user-supplied feed name to a Feed, defaulting to FeedAll.
func ParseFeed(s string) Feed {
	switch Feed(s) {
	case FeedFollowing:
		return FeedFollowing
	case FeedProfile:
		return FeedProfile
	default:
		return FeedAll
	}
}

// Post is a single post as rendered for the signed-in user.
type Post struct {
	ID        int64
	Author    string
	Content   string
	CreatedAt time.Time
	EditedAt  time.Time
	Likes     int
	Liked     bool
	IsAuthor  bool // True if the signed-in user wrote this post
}

// Page is one page of a feed.
type Page struct {
	Feed          Feed
	Posts         []Post
	Number        int
	NumPages      int
	HasNext       bool
	HasPrevious   bool
	Authenticated bool // Server-reported; gates the like control
}

// Profile is a user's public header plus the first page of their posts.
type Profile struct {
	Username      string
	Followers     int
	Following     int
	IsFollowing   bool
	Authenticated bool
	Page          Page
}

// LikeState is the server's view of a post's likes after a toggle.
type LikeState struct {
	Likes int
	Liked bool
}

// FollowState is the server's view of a relationship after a toggle.
type FollowState struct {
	IsFollowing bool
	Followers   int
	Following   int
}

// Viewer describes who the session belongs to.
type Viewer struct {
	Username      string
	Authenticated bool
}
