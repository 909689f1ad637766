package post

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

type CreatePostRequest struct {
	Content       string  `json:"content"`
	PostType      string  `json:"post_type"`
	MediaType     *string `json:"media_type"`
	MediaURL      *string `json:"media_url"`
	MediaMetadata *string `json:"media_metadata"`
	PrivacyLevel  string  `json:"privacy_level"`
}

func (r CreatePostRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{Field: "content", Message: "is required"})
	}
	if r.PostType != "" && !validator.IsInSlice(r.PostType, []string{string(TypePost), string(TypeTestimonial)}) {
		errs = append(errs, validator.ValidationError{Field: "post_type", Message: "must be post or testimonial"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateReactionRequest struct {
	PostID string `json:"post_id"`
	Type   string `json:"reaction_type"`
}

func (r CreateReactionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.PostID) {
		errs = append(errs, validator.ValidationError{Field: "post_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, AllReactionTypes()) {
		errs = append(errs, validator.ValidationError{Field: "reaction_type", Message: "must be one of like, love, haha, wow, sad, angry"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateCommentRequest struct {
	PostID   string  `json:"post_id"`
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

func (r CreateCommentRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.PostID) {
		errs = append(errs, validator.ValidationError{Field: "post_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{Field: "content", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateShareRequest struct {
	PostID string `json:"post_id"`
}

// ============= Response DTOs =============

type PostResponse struct {
	ID             string       `json:"id"`
	Author         user.Summary `json:"author"`
	Content        string       `json:"content"`
	PostType       PostType     `json:"post_type"`
	MediaType      *string      `json:"media_type"`
	MediaURL       *string      `json:"media_url"`
	CreatedAt      time.Time    `json:"created_at"`
	ReactionsCount int          `json:"reactions_count"`
	CommentsCount  int          `json:"comments_count"`
	SharesCount    int          `json:"shares_count"`
}

type CommentResponse struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Author    user.Summary      `json:"author"`
	CreatedAt time.Time         `json:"created_at"`
	Replies   []CommentResponse `json:"replies"`
}

// ReactionSummaryResponse aggregates a post's reactions by kind and
// reports the caller's own reaction, if any.
type ReactionSummaryResponse struct {
	Reactions    map[string]int `json:"reactions"`
	UserReaction *ReactionType  `json:"user_reaction"`
	Total        int            `json:"total"`
}

// ReactionOutcome reports what a reaction upsert did
type ReactionOutcome string

const (
	ReactionCreated ReactionOutcome = "created"
	ReactionUpdated ReactionOutcome = "updated"
	ReactionRemoved ReactionOutcome = "removed"
)

// ToPostResponse shapes a post entity for API responses
func ToPostResponse(p Post) PostResponse {
	return PostResponse{
		ID:             p.ID,
		Author:         p.Author,
		Content:        p.Content,
		PostType:       p.PostType,
		MediaType:      p.MediaType,
		MediaURL:       p.MediaURL,
		CreatedAt:      p.CreatedAt,
		ReactionsCount: p.ReactionsCount,
		CommentsCount:  p.CommentsCount,
		SharesCount:    p.SharesCount,
	}
}
