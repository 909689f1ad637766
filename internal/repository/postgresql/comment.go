package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
)

type commentRepository struct {
	db *database.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.DB) post.CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment
func (r *commentRepository) Create(ctx context.Context, c *post.Comment) error {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = newID()
	}
	c.CreatedAt = time.Now()

	query := `
		INSERT INTO comments (id, post_id, author_id, parent_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := q.Exec(ctx, query,
		c.ID,
		c.PostID,
		c.AuthorID,
		c.ParentID,
		c.Content,
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByPost returns all comments on a post with authors joined, oldest first
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*post.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.post_id, c.author_id, c.parent_id, c.content, c.created_at,
		       u.id, u.first_name, u.last_name, u.avatar
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := q.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []*post.Comment
	for rows.Next() {
		var c post.Comment
		if err := rows.Scan(
			&c.ID,
			&c.PostID,
			&c.AuthorID,
			&c.ParentID,
			&c.Content,
			&c.CreatedAt,
			&c.Author.ID,
			&c.Author.FirstName,
			&c.Author.LastName,
			&c.Author.Avatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	return comments, nil
}

// DeleteByPost removes all comments on a post
func (r *commentRepository) DeleteByPost(ctx context.Context, postID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete comments by post: %w", err)
	}

	return nil
}
