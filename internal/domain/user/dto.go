package user

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// UpdateProfileRequest updates the caller's own profile. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
	Phone     *string `json:"phone"`
	Avatar    *string `json:"avatar"`
	Bio       *string `json:"bio"`
}

func (r UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "must not be empty"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "must not be empty"})
	}
	if r.BirthDate != nil {
		if _, ok := validator.IsValidDate(*r.BirthDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "birth_date", Message: "must be a YYYY-MM-DD date"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePasswordRequest changes the caller's password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{Field: "current_password", Message: "is required"})
	}
	if len(r.NewPassword) < 6 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "must be at least 6 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePrivacyRequest changes the caller's privacy level
type UpdatePrivacyRequest struct {
	PrivacyLevel string `json:"privacy_level"`
}

func (r UpdatePrivacyRequest) Validate() error {
	if !validator.IsInSlice(r.PrivacyLevel, AllPrivacyLevels()) {
		return validator.ValidationErrors{{Field: "privacy_level", Message: "must be public, friends or private"}}
	}
	return nil
}

// ============= Response DTOs =============

// ProfileResponse is the public view of a user
type ProfileResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Bio       *string `json:"bio"`
	Avatar    *string `json:"avatar"`
	BirthDate *string `json:"birth_date"`
	CreatedAt string  `json:"created_at"`
}

// SearchResult is a single user search hit
type SearchResult struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar"`
}

// PrivacyResponse reports privacy settings
type PrivacyResponse struct {
	PrivacyLevel PrivacyLevel `json:"privacy_level"`
	IsActive     bool         `json:"is_active"`
}

// ToProfileResponse shapes a user entity for API responses
func ToProfileResponse(u User) ProfileResponse {
	resp := ProfileResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.BirthDate != nil {
		birthDate := u.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birthDate
	}
	return resp
}
