package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_UnwrapsToSentinel(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
	}
	for _, tc := range tests {
		err := fmt.Errorf("wrapped: %w", &APIError{Status: tc.status, Message: "x"})
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d should match %v", tc.status, tc.want)
		}
	}

	bad := &APIError{Status: 400, Message: "Post must have content."}
	if errors.Is(bad, ErrUnauthorized) || errors.Is(bad, ErrNotFound) {
		t.Fatalf("400 must not match a sentinel")
	}
	if bad.Error() != "Post must have content." {
		t.Fatalf("unexpected message: %q", bad.Error())
	}
	if (&APIError{Status: 500}).Error() != "api returned 500" {
		t.Fatalf("expected status fallback message")
	}
}

func TestParseFeed(t *testing.T) {
	if ParseFeed("following") != FeedFollowing || ParseFeed("profile") != FeedProfile {
		t.Fatalf("known feeds must parse")
	}
	if ParseFeed("") != FeedAll || ParseFeed("bogus") != FeedAll {
		t.Fatalf("unknown feeds default to all")
	}
}
