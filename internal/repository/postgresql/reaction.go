package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reactionRepository struct {
	db *database.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *database.DB) post.ReactionRepository {
	return &reactionRepository{db: db}
}

// Create inserts a new reaction
func (r *reactionRepository) Create(ctx context.Context, reaction *post.Reaction) error {
	q := GetQuerier(ctx, r.db)

	if reaction.ID == "" {
		reaction.ID = newID()
	}
	reaction.CreatedAt = time.Now()

	query := `
		INSERT INTO reactions (id, user_id, post_id, reaction_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		reaction.ID,
		reaction.UserID,
		reaction.PostID,
		string(reaction.Type),
		reaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reaction: %w", err)
	}

	return nil
}

// GetByUserAndPost returns the user's reaction on a post, if any
func (r *reactionRepository) GetByUserAndPost(ctx context.Context, userID, postID string) (*post.Reaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, post_id, reaction_type, created_at
		FROM reactions
		WHERE user_id = $1 AND post_id = $2
	`

	var reaction post.Reaction
	var reactionType string
	err := q.QueryRow(ctx, query, userID, postID).Scan(
		&reaction.ID,
		&reaction.UserID,
		&reaction.PostID,
		&reactionType,
		&reaction.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reaction: %w", err)
	}

	reaction.Type = post.ReactionType(reactionType)
	return &reaction, nil
}

// UpdateType changes an existing reaction's kind
func (r *reactionRepository) UpdateType(ctx context.Context, id string, reactionType post.ReactionType) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE reactions SET reaction_type = $2 WHERE id = $1`, id, string(reactionType))
	if err != nil {
		return fmt.Errorf("failed to update reaction: %w", err)
	}

	return nil
}

// Delete removes a reaction
func (r *reactionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM reactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reaction: %w", err)
	}

	return nil
}

// ListByPost returns all reactions on a post
func (r *reactionRepository) ListByPost(ctx context.Context, postID string) ([]*post.Reaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, post_id, reaction_type, created_at
		FROM reactions
		WHERE post_id = $1
	`

	rows, err := q.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}
	defer rows.Close()

	var reactions []*post.Reaction
	for rows.Next() {
		var reaction post.Reaction
		var reactionType string
		if err := rows.Scan(
			&reaction.ID,
			&reaction.UserID,
			&reaction.PostID,
			&reactionType,
			&reaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		reaction.Type = post.ReactionType(reactionType)
		reactions = append(reactions, &reaction)
	}

	return reactions, nil
}

// DeleteByPost removes all reactions on a post
func (r *reactionRepository) DeleteByPost(ctx context.Context, postID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM reactions WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete reactions by post: %w", err)
	}

	return nil
}
