package story

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStoryRepo struct {
	story.Repository

	stories map[string]*story.Story
	views   map[string]bool
	purged  int64
}

func (f *fakeStoryRepo) GetByID(ctx context.Context, id string) (*story.Story, error) {
	s, ok := f.stories[id]
	if !ok {
		return nil, story.ErrStoryNotFound
	}
	return s, nil
}

func (f *fakeStoryRepo) CreateView(ctx context.Context, v *story.View) error {
	f.views[v.StoryID+"/"+v.ViewerID] = true
	return nil
}

func (f *fakeStoryRepo) HasViewed(ctx context.Context, storyID, viewerID string) (bool, error) {
	return f.views[storyID+"/"+viewerID], nil
}

func (f *fakeStoryRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.purged, nil
}

func newFixture() (*fakeStoryRepo, story.Service) {
	repo := &fakeStoryRepo{
		stories: map[string]*story.Story{
			"story-live": {
				ID:        "story-live",
				AuthorID:  "author-1",
				ExpiresAt: time.Now().Add(time.Hour),
			},
			"story-dead": {
				ID:        "story-dead",
				AuthorID:  "author-1",
				ExpiresAt: time.Now().Add(-time.Minute),
			},
		},
		views: map[string]bool{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return repo, NewStoryService(repo, logger)
}

func TestViewStory_RecordsFirstViewOnly(t *testing.T) {
	repo, svc := newFixture()

	require.NoError(t, svc.ViewStory(context.Background(), "viewer-1", "story-live"))
	assert.True(t, repo.views["story-live/viewer-1"])

	// Repeat views are absorbed
	require.NoError(t, svc.ViewStory(context.Background(), "viewer-1", "story-live"))
	assert.Len(t, repo.views, 1)
}

func TestViewStory_AuthorViewIsNotRecorded(t *testing.T) {
	repo, svc := newFixture()

	require.NoError(t, svc.ViewStory(context.Background(), "author-1", "story-live"))
	assert.Empty(t, repo.views)
}

func TestViewStory_ExpiredStoryFails(t *testing.T) {
	_, svc := newFixture()

	err := svc.ViewStory(context.Background(), "viewer-1", "story-dead")
	assert.ErrorIs(t, err, story.ErrStoryExpired)
}

func TestDeleteStory_OnlyAuthorMayDelete(t *testing.T) {
	_, svc := newFixture()

	err := svc.DeleteStory(context.Background(), "viewer-1", "story-live")
	assert.ErrorIs(t, err, story.ErrNotStoryAuthor)
}

func TestPurgeExpired(t *testing.T) {
	repo, svc := newFixture()
	repo.purged = 4

	assert.NoError(t, svc.PurgeExpired(context.Background()))
}
