package story

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *Story) error
	GetByID(ctx context.Context, id string) (*Story, error)
	ListActive(ctx context.Context, now time.Time) ([]*Story, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	CreateView(ctx context.Context, v *View) error
	HasViewed(ctx context.Context, storyID, viewerID string) (bool, error)
}
