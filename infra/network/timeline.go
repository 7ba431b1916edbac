package network

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/CrestNiraj12/netterm/domain"
)

// timelineService implements app.TimelineService against the network API.
type timelineService struct {
	client *Client
}

// NewTimelineService creates a TimelineService backed by the network API.
func NewTimelineService(client *Client) *timelineService {
	return &timelineService{client: client}
}

// wirePost is the service's serialized post.
type wirePost struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	EditedAt  string `json:"edited_at"`
	Author    string `json:"author"`
	Likes     int    `json:"likes"`
	Liked     bool   `json:"liked"`
	IsAuthor  bool   `json:"is_author"`
}

// wirePage is the pagination envelope shared by /posts, /following and
// /profile/{username}.
type wirePage struct {
	Posts           []wirePost `json:"posts"`
	HasNext         bool       `json:"has_next"`
	HasPrevious     bool       `json:"has_previous"`
	PageNumber      int        `json:"page_number"`
	NumPages        int        `json:"num_pages"`
	CurrentPage     int        `json:"current_page"`
	IsAuthenticated bool       `json:"is_authenticated"`
	FeedType        string     `json:"feed_type"`
}

func (s *timelineService) FetchPosts(ctx context.Context, feed domain.Feed, page int, username string) (domain.Page, error) {
	if feed == domain.FeedFollowing {
		return s.FetchFollowing(ctx, page)
	}
	q := url.Values{}
	q.Set("feed", string(feed))
	q.Set("page", strconv.Itoa(normalizePage(page)))
	if feed == domain.FeedProfile && username != "" {
		q.Set("username", username)
	}

	var wp wirePage
	if err := s.client.GetJSON(ctx, "/posts?"+q.Encode(), &wp); err != nil {
		return domain.Page{}, fmt.Errorf("fetching %s posts: %w", feed, err)
	}
	return mapPage(wp, feed), nil
}

func (s *timelineService) FetchFollowing(ctx context.Context, page int) (domain.Page, error) {
	path := fmt.Sprintf("/following?page=%d", normalizePage(page))
	var wp wirePage
	if err := s.client.GetJSON(ctx, path, &wp); err != nil {
		return domain.Page{}, fmt.Errorf("fetching following posts: %w", err)
	}
	return mapPage(wp, domain.FeedFollowing), nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func mapPage(wp wirePage, feed domain.Feed) domain.Page {
	number := wp.PageNumber
	if number == 0 {
		number = wp.CurrentPage
	}
	posts := make([]domain.Post, 0, len(wp.Posts))
	for _, p := range wp.Posts {
		posts = append(posts, mapPost(p))
	}
	return domain.Page{
		Feed:          feed,
		Posts:         posts,
		Number:        number,
		NumPages:      wp.NumPages,
		HasNext:       wp.HasNext,
		HasPrevious:   wp.HasPrevious,
		Authenticated: wp.IsAuthenticated,
	}
}

func mapPost(p wirePost) domain.Post {
	return domain.Post{
		ID:        p.ID,
		Author:    sanitizeForTerminal(p.Author),
		Content:   sanitizeForTerminal(p.Content),
		CreatedAt: parseTime(p.CreatedAt),
		EditedAt:  parseTime(p.EditedAt),
		Likes:     p.Likes,
		Liked:     p.Liked,
		IsAuthor:  p.IsAuthor,
	}
}

// parseTime accepts ISO-8601 timestamps with or without fractional seconds.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
