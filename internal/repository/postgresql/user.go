package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, gender, birth_date, phone, avatar, bio, privacy_level, is_active, created_at, last_seen`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var privacy string
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Gender,
		&u.BirthDate,
		&u.Phone,
		&u.Avatar,
		&u.Bio,
		&privacy,
		&u.IsActive,
		&u.CreatedAt,
		&u.LastSeen,
	)
	if err != nil {
		return user.User{}, err
	}
	u.PrivacyLevel = user.PrivacyLevel(privacy)
	return u, nil
}

// Create inserts a new user
func (r *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	if newUser.ID == "" {
		newUser.ID = newID()
	}
	now := time.Now()
	newUser.CreatedAt = now
	newUser.LastSeen = now
	if newUser.PrivacyLevel == "" {
		newUser.PrivacyLevel = user.PrivacyPublic
	}
	newUser.IsActive = true

	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, gender, birth_date, phone, avatar, bio, privacy_level, is_active, created_at, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, query,
		newUser.ID,
		newUser.FirstName,
		newUser.LastName,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Gender,
		newUser.BirthDate,
		newUser.Phone,
		newUser.Avatar,
		newUser.Bio,
		string(newUser.PrivacyLevel),
		newUser.IsActive,
		newUser.CreatedAt,
		newUser.LastSeen,
	)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1)`, userColumns)

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// ExistsByEmail reports whether a user with the given email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	var exists bool
	if err := q.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// Search finds active users by name or email, excluding the caller
func (r *userRepository) Search(ctx context.Context, query string, excludeUserID string, limit int) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	sqlQuery := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE is_active = true
		  AND id != $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2)
		ORDER BY first_name, last_name
		LIMIT $3
	`, userColumns)

	rows, err := q.Query(ctx, sqlQuery, excludeUserID, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, nil
}

// UpdateProfile updates the provided profile fields, leaving nil fields untouched
func (r *userRepository) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
		    last_name  = COALESCE($3, last_name),
		    gender     = COALESCE($4, gender),
		    birth_date = COALESCE($5::date, birth_date),
		    phone      = COALESCE($6, phone),
		    avatar     = COALESCE($7, avatar),
		    bio        = COALESCE($8, bio)
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		id,
		req.FirstName,
		req.LastName,
		req.Gender,
		req.BirthDate,
		req.Phone,
		req.Avatar,
		req.Bio,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the user's password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePrivacy sets the user's privacy level
func (r *userRepository) UpdatePrivacy(ctx context.Context, id string, level user.PrivacyLevel) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `UPDATE users SET privacy_level = $2 WHERE id = $1`, id, string(level))
	if err != nil {
		return fmt.Errorf("failed to update privacy: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Deactivate marks the account inactive
func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `UPDATE users SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// TouchLastSeen refreshes the user's last_seen timestamp
func (r *userRepository) TouchLastSeen(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE users SET last_seen = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to touch last seen: %w", err)
	}

	return nil
}

// GetSummary returns the compact identity shape for one user
func (r *userRepository) GetSummary(ctx context.Context, id string) (user.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, first_name, last_name, avatar FROM users WHERE id = $1`

	var s user.Summary
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Avatar)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Summary{}, user.ErrUserNotFound
		}
		return user.Summary{}, fmt.Errorf("failed to get user summary: %w", err)
	}

	return s, nil
}
