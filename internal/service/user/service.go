package user

import (
	"context"
	"fmt"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.Repository
}

func NewUserService(userRepository user.Repository) user.Service {
	return &UserServiceImpl{Repository: userRepository}
}

// GetProfile implements user.Service.
func (s *UserServiceImpl) GetProfile(ctx context.Context, userID string) (user.ProfileResponse, error) {
	userData, err := s.Repository.GetByID(ctx, userID)
	if err != nil {
		return user.ProfileResponse{}, err
	}
	return user.ToProfileResponse(userData), nil
}

// UpdateProfile implements user.Service.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return user.ProfileResponse{}, err
	}

	if err := s.Repository.UpdateProfile(ctx, userID, req); err != nil {
		return user.ProfileResponse{}, err
	}

	return s.GetProfile(ctx, userID)
}

// UpdatePassword implements user.Service.
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, userID string, req user.UpdatePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := s.Repository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Repository.UpdatePassword(ctx, userID, string(hash))
}

// GetPrivacy implements user.Service.
func (s *UserServiceImpl) GetPrivacy(ctx context.Context, userID string) (user.PrivacyResponse, error) {
	userData, err := s.Repository.GetByID(ctx, userID)
	if err != nil {
		return user.PrivacyResponse{}, err
	}
	return user.PrivacyResponse{
		PrivacyLevel: userData.PrivacyLevel,
		IsActive:     userData.IsActive,
	}, nil
}

// UpdatePrivacy implements user.Service.
func (s *UserServiceImpl) UpdatePrivacy(ctx context.Context, userID string, req user.UpdatePrivacyRequest) (user.PrivacyResponse, error) {
	if err := req.Validate(); err != nil {
		return user.PrivacyResponse{}, err
	}

	if err := s.Repository.UpdatePrivacy(ctx, userID, user.PrivacyLevel(req.PrivacyLevel)); err != nil {
		return user.PrivacyResponse{}, err
	}

	return s.GetPrivacy(ctx, userID)
}

// DeactivateAccount implements user.Service.
func (s *UserServiceImpl) DeactivateAccount(ctx context.Context, userID string) error {
	return s.Repository.Deactivate(ctx, userID)
}

// Search implements user.Service.
func (s *UserServiceImpl) Search(ctx context.Context, actorID, query string, limit int) ([]user.SearchResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	users, err := s.Repository.Search(ctx, query, actorID, limit)
	if err != nil {
		return nil, err
	}

	results := make([]user.SearchResult, 0, len(users))
	for _, u := range users {
		results = append(results, user.SearchResult{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Avatar:    u.Avatar,
		})
	}

	return results, nil
}
