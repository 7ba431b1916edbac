package app

import (
	"context"

	"github.com/CrestNiraj12/netterm/domain"
)

// PostService creates, edits, deletes, and likes posts.
type PostService interface {
	// Create publishes a new post.
	Create(ctx context.Context, content string) (domain.Post, error)

	// Edit replaces the content of a post the user wrote.
	Edit(ctx context.Context, id int64, content string) (domain.Post, error)

	// Delete removes a post the user wrote.
	Delete(ctx context.Context, id int64) error

	// ToggleLike likes or unlikes a post and returns the new state.
	ToggleLike(ctx context.Context, id int64) (domain.LikeState, error)
}
