package network

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrestNiraj12/netterm/domain"
)

// postService implements app.PostService against the network API.
type postService struct {
	client *Client
}

// NewPostService creates a PostService backed by the network API.
func NewPostService(client *Client) *postService {
	return &postService{client: client}
}

type postBody struct {
	Post string `json:"post"`
}

func (s *postService) Create(ctx context.Context, content string) (domain.Post, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}
	var wp wirePost
	if err := s.client.PostJSON(ctx, "/new_post", postBody{Post: content}, &wp); err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return mapPost(wp), nil
}

func (s *postService) Edit(ctx context.Context, id int64, content string) (domain.Post, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}
	var wp wirePost
	path := fmt.Sprintf("/edit/%d", id)
	if err := s.client.PutJSON(ctx, path, postBody{Post: content}, &wp); err != nil {
		return domain.Post{}, fmt.Errorf("editing post: %w", err)
	}
	return mapPost(wp), nil
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/delete/%d", id)
	if err := s.client.DeleteJSON(ctx, path, nil); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *postService) ToggleLike(ctx context.Context, id int64) (domain.LikeState, error) {
	var resp struct {
		Likes int  `json:"likes"`
		Liked bool `json:"liked"`
	}
	path := fmt.Sprintf("/like/%d", id)
	if err := s.client.PostJSON(ctx, path, nil, &resp); err != nil {
		return domain.LikeState{}, fmt.Errorf("toggling like: %w", err)
	}
	return domain.LikeState{Likes: resp.Likes, Liked: resp.Liked}, nil
}
