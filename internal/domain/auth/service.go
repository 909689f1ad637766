package auth

import (
	"context"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
)

// AuthService handles registration and credential-based login
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (user.ProfileResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Me(ctx context.Context, userID string) (user.ProfileResponse, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}
