package user

import (
	"context"
)

type Repository interface {
	SummaryProvider

	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Search(ctx context.Context, query string, excludeUserID string, limit int) ([]User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdatePrivacy(ctx context.Context, id string, level PrivacyLevel) error
	Deactivate(ctx context.Context, id string) error
	TouchLastSeen(ctx context.Context, id string) error
}

// SummaryProvider is the narrow identity-lookup interface the
// notification dispatcher depends on: one lookup per event, never
// re-queried per channel.
type SummaryProvider interface {
	GetSummary(ctx context.Context, id string) (Summary, error)
}
