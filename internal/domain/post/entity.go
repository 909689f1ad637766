package post

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
)

type PostType string

const (
	TypePost        PostType = "post"
	TypeTestimonial PostType = "testimonial"
)

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// AllReactionTypes returns the accepted reaction kinds
func AllReactionTypes() []string {
	return []string{
		string(ReactionLike),
		string(ReactionLove),
		string(ReactionHaha),
		string(ReactionWow),
		string(ReactionSad),
		string(ReactionAngry),
	}
}

type Post struct {
	ID            string
	AuthorID      string
	Content       string
	PostType      PostType
	MediaType     *string
	MediaURL      *string
	MediaMetadata *string
	PrivacyLevel  string
	CreatedAt     time.Time

	// Joined
	Author         user.Summary
	ReactionsCount int
	CommentsCount  int
	SharesCount    int
}

type Reaction struct {
	ID        string
	UserID    string
	PostID    string
	Type      ReactionType
	CreatedAt time.Time
}

type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	ParentID  *string
	Content   string
	CreatedAt time.Time

	// Joined
	Author user.Summary
}

type Share struct {
	ID        string
	UserID    string
	PostID    string
	CreatedAt time.Time
}
