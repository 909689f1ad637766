package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
)

type shareRepository struct {
	db *database.DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *database.DB) post.ShareRepository {
	return &shareRepository{db: db}
}

// Create inserts a new share
func (r *shareRepository) Create(ctx context.Context, s *post.Share) error {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = newID()
	}
	s.CreatedAt = time.Now()

	query := `
		INSERT INTO shares (id, user_id, post_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.Exec(ctx, query, s.ID, s.UserID, s.PostID, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}

	return nil
}

// ExistsByUserAndPost reports whether the user already shared the post
func (r *shareRepository) ExistsByUserAndPost(ctx context.Context, userID, postID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM shares WHERE user_id = $1 AND post_id = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, postID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check share: %w", err)
	}

	return exists, nil
}

// DeleteByPost removes all shares of a post
func (r *shareRepository) DeleteByPost(ctx context.Context, postID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM shares WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete shares by post: %w", err)
	}

	return nil
}
