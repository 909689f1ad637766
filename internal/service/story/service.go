package story

import (
	"context"
	"log/slog"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/story"
)

const defaultStoryDurationHours = 24

type StoryServiceImpl struct {
	stories story.Repository
	logger  *slog.Logger
}

func NewStoryService(stories story.Repository, logger *slog.Logger) story.Service {
	return &StoryServiceImpl{
		stories: stories,
		logger:  logger,
	}
}

// CreateStory implements story.Service.
func (s *StoryServiceImpl) CreateStory(ctx context.Context, authorID string, req story.CreateStoryRequest) (story.StoryResponse, error) {
	if err := req.Validate(); err != nil {
		return story.StoryResponse{}, err
	}

	duration := req.DurationHours
	if duration == 0 {
		duration = defaultStoryDurationHours
	}

	newStory := &story.Story{
		AuthorID:        authorID,
		Content:         req.Content,
		MediaType:       req.MediaType,
		MediaURL:        req.MediaURL,
		BackgroundColor: req.BackgroundColor,
		DurationHours:   duration,
	}
	if err := s.stories.Create(ctx, newStory); err != nil {
		return story.StoryResponse{}, err
	}

	created, err := s.stories.GetByID(ctx, newStory.ID)
	if err != nil {
		return story.StoryResponse{}, err
	}

	return story.ToStoryResponse(*created), nil
}

// ListActiveStories implements story.Service.
func (s *StoryServiceImpl) ListActiveStories(ctx context.Context) ([]story.StoryResponse, error) {
	stories, err := s.stories.ListActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	responses := make([]story.StoryResponse, 0, len(stories))
	for _, st := range stories {
		responses = append(responses, story.ToStoryResponse(*st))
	}

	return responses, nil
}

// ViewStory implements story.Service. Author views and repeat views are
// not recorded.
func (s *StoryServiceImpl) ViewStory(ctx context.Context, viewerID, storyID string) error {
	st, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if st.Expired(time.Now()) {
		return story.ErrStoryExpired
	}
	if st.AuthorID == viewerID {
		return nil
	}

	viewed, err := s.stories.HasViewed(ctx, storyID, viewerID)
	if err != nil {
		return err
	}
	if viewed {
		return nil
	}

	return s.stories.CreateView(ctx, &story.View{
		StoryID:  storyID,
		ViewerID: viewerID,
	})
}

// DeleteStory implements story.Service.
func (s *StoryServiceImpl) DeleteStory(ctx context.Context, actorID, storyID string) error {
	st, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return err
	}
	if st.AuthorID != actorID {
		return story.ErrNotStoryAuthor
	}

	return s.stories.Delete(ctx, storyID)
}

// PurgeExpired implements story.Service. Run periodically by the
// scheduler.
func (s *StoryServiceImpl) PurgeExpired(ctx context.Context) error {
	deleted, err := s.stories.DeleteExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("purged expired stories", slog.Int64("deleted", deleted))
	}
	return nil
}
