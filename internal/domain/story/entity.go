package story

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
)

type Story struct {
	ID              string
	AuthorID        string
	Content         *string
	MediaType       *string
	MediaURL        *string
	BackgroundColor *string
	DurationHours   int
	CreatedAt       time.Time
	ExpiresAt       time.Time

	// Joined
	Author     user.Summary
	ViewsCount int
}

type View struct {
	ID       string
	StoryID  string
	ViewerID string
	ViewedAt time.Time
}

// Expired reports whether the story is past its expiry at the given time
func (s *Story) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
