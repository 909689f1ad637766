package story

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

type CreateStoryRequest struct {
	Content         *string `json:"content"`
	MediaType       *string `json:"media_type"`
	MediaURL        *string `json:"media_url"`
	BackgroundColor *string `json:"background_color"`
	DurationHours   int     `json:"duration_hours"`
}

func (r CreateStoryRequest) Validate() error {
	var errs validator.ValidationErrors
	if (r.Content == nil || validator.IsEmpty(*r.Content)) && (r.MediaURL == nil || validator.IsEmpty(*r.MediaURL)) {
		errs = append(errs, validator.ValidationError{Field: "content", Message: "content or media_url is required"})
	}
	if r.BackgroundColor != nil && !validator.IsValidHexColor(*r.BackgroundColor) {
		errs = append(errs, validator.ValidationError{Field: "background_color", Message: "must be a #rrggbb color"})
	}
	if r.DurationHours < 0 || r.DurationHours > 48 {
		errs = append(errs, validator.ValidationError{Field: "duration_hours", Message: "must be between 1 and 48"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ============= Response DTOs =============

type StoryResponse struct {
	ID              string       `json:"id"`
	Author          user.Summary `json:"author"`
	Content         *string      `json:"content"`
	MediaType       *string      `json:"media_type"`
	MediaURL        *string      `json:"media_url"`
	BackgroundColor *string      `json:"background_color"`
	CreatedAt       time.Time    `json:"created_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	ViewsCount      int          `json:"views_count"`
}

// ToStoryResponse shapes a story entity for API responses
func ToStoryResponse(s Story) StoryResponse {
	return StoryResponse{
		ID:              s.ID,
		Author:          s.Author,
		Content:         s.Content,
		MediaType:       s.MediaType,
		MediaURL:        s.MediaURL,
		BackgroundColor: s.BackgroundColor,
		CreatedAt:       s.CreatedAt,
		ExpiresAt:       s.ExpiresAt,
		ViewsCount:      s.ViewsCount,
	}
}
