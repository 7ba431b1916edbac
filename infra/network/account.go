package network

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/CrestNiraj12/netterm/domain"
)

// accountService implements app.AccountService against the network API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by the network API.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

func (s *accountService) Profile(ctx context.Context, username string) (domain.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Profile{}, fmt.Errorf("invalid username")
	}
	var resp struct {
		wirePage
		IsFollowing     bool   `json:"is_following"`
		FollowersCount  int    `json:"followers_count"`
		FollowingCount  int    `json:"following_count"`
		ProfileUsername string `json:"profile_username"`
	}
	if err := s.client.GetJSON(ctx, "/profile/"+url.PathEscape(username), &resp); err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}
	name := sanitizeForTerminal(resp.ProfileUsername)
	if name == "" {
		name = username
	}
	return domain.Profile{
		Username:      name,
		Followers:     resp.FollowersCount,
		Following:     resp.FollowingCount,
		IsFollowing:   resp.IsFollowing,
		Authenticated: resp.IsAuthenticated,
		Page:          mapPage(resp.wirePage, domain.FeedProfile),
	}, nil
}

func (s *accountService) ToggleFollow(ctx context.Context, username string) (domain.FollowState, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.FollowState{}, fmt.Errorf("invalid username")
	}
	var resp struct {
		IsFollowing    bool `json:"is_following"`
		FollowersCount int  `json:"followers_count"`
		FollowingCount int  `json:"following_count"`
	}
	if err := s.client.PostJSON(ctx, "/follow/"+url.PathEscape(username), nil, &resp); err != nil {
		return domain.FollowState{}, fmt.Errorf("toggling follow: %w", err)
	}
	return domain.FollowState{
		IsFollowing: resp.IsFollowing,
		Followers:   resp.FollowersCount,
		Following:   resp.FollowingCount,
	}, nil
}
