package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type postRepository struct {
	db *database.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *database.DB) post.PostRepository {
	return &postRepository{db: db}
}

// postSelect joins the author summary and interaction counts onto each row.
const postSelect = `
	SELECT p.id, p.author_id, p.content, p.post_type, p.media_type, p.media_url, p.media_metadata, p.privacy_level, p.created_at,
	       u.id, u.first_name, u.last_name, u.avatar,
	       (SELECT COUNT(*) FROM reactions r WHERE r.post_id = p.id),
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	       (SELECT COUNT(*) FROM shares s WHERE s.post_id = p.id)
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	var postType string
	err := row.Scan(
		&p.ID,
		&p.AuthorID,
		&p.Content,
		&postType,
		&p.MediaType,
		&p.MediaURL,
		&p.MediaMetadata,
		&p.PrivacyLevel,
		&p.CreatedAt,
		&p.Author.ID,
		&p.Author.FirstName,
		&p.Author.LastName,
		&p.Author.Avatar,
		&p.ReactionsCount,
		&p.CommentsCount,
		&p.SharesCount,
	)
	if err != nil {
		return nil, err
	}
	p.PostType = post.PostType(postType)
	return &p, nil
}

// Create inserts a new post
func (r *postRepository) Create(ctx context.Context, p *post.Post) error {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = newID()
	}
	p.CreatedAt = time.Now()

	query := `
		INSERT INTO posts (id, author_id, content, post_type, media_type, media_url, media_metadata, privacy_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		p.ID,
		p.AuthorID,
		p.Content,
		string(p.PostType),
		p.MediaType,
		p.MediaURL,
		p.MediaMetadata,
		p.PrivacyLevel,
		p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post with its author and counts
func (r *postRepository) GetByID(ctx context.Context, id string) (*post.Post, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPost(q.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return p, nil
}

// ListFeed returns the newest posts across all authors
func (r *postRepository) ListFeed(ctx context.Context, limit int) ([]*post.Post, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, postSelect+` ORDER BY p.created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListByAuthor returns an author's posts of the given type, newest first
func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, postType post.PostType, limit int) ([]*post.Post, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		postSelect+` WHERE p.author_id = $1 AND p.post_type = $2 ORDER BY p.created_at DESC LIMIT $3`,
		authorID, string(postType), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts by author: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func collectPosts(rows pgx.Rows) ([]*post.Post, error) {
	var posts []*post.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Delete removes a post
func (r *postRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	result, err := q.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	return nil
}
