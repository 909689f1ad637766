package user

import (
	"context"
)

// Service covers profile, settings and people search
type Service interface {
	GetProfile(ctx context.Context, userID string) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	UpdatePassword(ctx context.Context, userID string, req UpdatePasswordRequest) error
	GetPrivacy(ctx context.Context, userID string) (PrivacyResponse, error)
	UpdatePrivacy(ctx context.Context, userID string, req UpdatePrivacyRequest) (PrivacyResponse, error)
	DeactivateAccount(ctx context.Context, userID string) error
	Search(ctx context.Context, actorID, query string, limit int) ([]SearchResult, error)
}
