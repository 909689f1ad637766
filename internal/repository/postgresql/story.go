package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/story"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type storyRepository struct {
	db *database.DB
}

// NewStoryRepository creates a new story repository
func NewStoryRepository(db *database.DB) story.Repository {
	return &storyRepository{db: db}
}

const storySelect = `
	SELECT s.id, s.author_id, s.content, s.media_type, s.media_url, s.background_color, s.duration_hours, s.created_at, s.expires_at,
	       u.id, u.first_name, u.last_name, u.avatar,
	       (SELECT COUNT(*) FROM story_views v WHERE v.story_id = s.id)
	FROM stories s
	JOIN users u ON u.id = s.author_id
`

func scanStory(row pgx.Row) (*story.Story, error) {
	var s story.Story
	err := row.Scan(
		&s.ID,
		&s.AuthorID,
		&s.Content,
		&s.MediaType,
		&s.MediaURL,
		&s.BackgroundColor,
		&s.DurationHours,
		&s.CreatedAt,
		&s.ExpiresAt,
		&s.Author.ID,
		&s.Author.FirstName,
		&s.Author.LastName,
		&s.Author.Avatar,
		&s.ViewsCount,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new story
func (r *storyRepository) Create(ctx context.Context, s *story.Story) error {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = newID()
	}
	s.CreatedAt = time.Now()
	s.ExpiresAt = s.CreatedAt.Add(time.Duration(s.DurationHours) * time.Hour)

	query := `
		INSERT INTO stories (id, author_id, content, media_type, media_url, background_color, duration_hours, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		s.ID,
		s.AuthorID,
		s.Content,
		s.MediaType,
		s.MediaURL,
		s.BackgroundColor,
		s.DurationHours,
		s.CreatedAt,
		s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

// GetByID retrieves a story with its author and view count
func (r *storyRepository) GetByID(ctx context.Context, id string) (*story.Story, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanStory(q.QueryRow(ctx, storySelect+` WHERE s.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, story.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	return s, nil
}

// ListActive returns unexpired stories, newest first
func (r *storyRepository) ListActive(ctx context.Context, now time.Time) ([]*story.Story, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, storySelect+` WHERE s.expires_at > $1 ORDER BY s.created_at DESC`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query active stories: %w", err)
	}
	defer rows.Close()

	var stories []*story.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, s)
	}

	return stories, nil
}

// Delete removes a story and its views
func (r *storyRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM story_views WHERE story_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete story views: %w", err)
	}

	result, err := q.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if result.RowsAffected() == 0 {
		return story.ErrStoryNotFound
	}

	return nil
}

// DeleteExpired removes every story past its expiry, returning how many
func (r *storyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx,
		`DELETE FROM story_views WHERE story_id IN (SELECT id FROM stories WHERE expires_at <= $1)`, now); err != nil {
		return 0, fmt.Errorf("failed to delete expired story views: %w", err)
	}

	result, err := q.Exec(ctx, `DELETE FROM stories WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired stories: %w", err)
	}

	return result.RowsAffected(), nil
}

// CreateView records that a user viewed a story
func (r *storyRepository) CreateView(ctx context.Context, v *story.View) error {
	q := GetQuerier(ctx, r.db)

	if v.ID == "" {
		v.ID = newID()
	}
	v.ViewedAt = time.Now()

	query := `
		INSERT INTO story_views (id, story_id, viewer_id, viewed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (story_id, viewer_id) DO NOTHING
	`

	_, err := q.Exec(ctx, query, v.ID, v.StoryID, v.ViewerID, v.ViewedAt)
	if err != nil {
		return fmt.Errorf("failed to create story view: %w", err)
	}

	return nil
}

// HasViewed reports whether the user already viewed the story
func (r *storyRepository) HasViewed(ctx context.Context, storyID, viewerID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM story_views WHERE story_id = $1 AND viewer_id = $2)`

	var viewed bool
	if err := q.QueryRow(ctx, query, storyID, viewerID).Scan(&viewed); err != nil {
		return false, fmt.Errorf("failed to check story view: %w", err)
	}

	return viewed, nil
}
