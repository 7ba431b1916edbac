package app

import (
	"context"

	"github.com/CrestNiraj12/netterm/domain"
)

// TimelineService fetches pages of posts.
type TimelineService interface {
	// FetchPosts returns one page of the all or profile feed.
	// username is only sent for the profile feed.
	FetchPosts(ctx context.Context, feed domain.Feed, page int, username string) (domain.Page, error)

	// FetchFollowing returns one page of posts by followed users.
	// Returns domain.ErrUnauthorized when the session is not signed in.
	FetchFollowing(ctx context.Context, page int) (domain.Page, error)
}
