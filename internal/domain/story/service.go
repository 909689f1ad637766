package story

import (
	"context"
)

type Service interface {
	CreateStory(ctx context.Context, authorID string, req CreateStoryRequest) (StoryResponse, error)
	ListActiveStories(ctx context.Context) ([]StoryResponse, error)
	ViewStory(ctx context.Context, viewerID, storyID string) error
	DeleteStory(ctx context.Context, actorID, storyID string) error
	PurgeExpired(ctx context.Context) error
}
