package post

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	post.PostRepository

	posts map[string]*post.Post
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return p, nil
}

type fakeReactionRepo struct {
	post.ReactionRepository

	reactions map[string]*post.Reaction // keyed by user+post
	updated   []string
	deleted   []string
}

func reactionKey(userID, postID string) string { return userID + "/" + postID }

func (f *fakeReactionRepo) Create(ctx context.Context, r *post.Reaction) error {
	r.ID = "reaction-" + r.UserID
	f.reactions[reactionKey(r.UserID, r.PostID)] = r
	return nil
}

func (f *fakeReactionRepo) GetByUserAndPost(ctx context.Context, userID, postID string) (*post.Reaction, error) {
	return f.reactions[reactionKey(userID, postID)], nil
}

func (f *fakeReactionRepo) UpdateType(ctx context.Context, id string, reactionType post.ReactionType) error {
	f.updated = append(f.updated, id)
	for _, r := range f.reactions {
		if r.ID == id {
			r.Type = reactionType
		}
	}
	return nil
}

func (f *fakeReactionRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	for key, r := range f.reactions {
		if r.ID == id {
			delete(f.reactions, key)
		}
	}
	return nil
}

type fakeCommentRepo struct {
	post.CommentRepository

	comments []*post.Comment
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *post.Comment) error {
	c.ID = "comment-1"
	c.CreatedAt = time.Now()
	f.comments = append(f.comments, c)
	return nil
}

func (f *fakeCommentRepo) ListByPost(ctx context.Context, postID string) ([]*post.Comment, error) {
	return f.comments, nil
}

type fakeShareRepo struct {
	post.ShareRepository

	shared map[string]bool
}

func (f *fakeShareRepo) Create(ctx context.Context, s *post.Share) error {
	f.shared[reactionKey(s.UserID, s.PostID)] = true
	return nil
}

func (f *fakeShareRepo) ExistsByUserAndPost(ctx context.Context, userID, postID string) (bool, error) {
	return f.shared[reactionKey(userID, postID)], nil
}

type fakeSummaries struct{}

func (fakeSummaries) GetSummary(ctx context.Context, id string) (user.Summary, error) {
	return user.Summary{ID: id, FirstName: "Test", LastName: "User"}, nil
}

// fakeNotifier records dispatched events
type fakeNotifier struct {
	notification.Service

	requests []notification.NotifyRequest
}

func (f *fakeNotifier) Notify(ctx context.Context, req notification.NotifyRequest) (string, error) {
	f.requests = append(f.requests, req)
	return "notif-1", nil
}

type fixture struct {
	posts     *fakePostRepo
	reactions *fakeReactionRepo
	comments  *fakeCommentRepo
	shares    *fakeShareRepo
	notifier  *fakeNotifier
	svc       post.Service
}

func newFixture() *fixture {
	f := &fixture{
		posts: &fakePostRepo{posts: map[string]*post.Post{
			"post-1": {ID: "post-1", AuthorID: "author-1", Content: "hello"},
		}},
		reactions: &fakeReactionRepo{reactions: map[string]*post.Reaction{}},
		comments:  &fakeCommentRepo{},
		shares:    &fakeShareRepo{shared: map[string]bool{}},
		notifier:  &fakeNotifier{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewPostService(nil, f.posts, f.reactions, f.comments, f.shares, fakeSummaries{}, f.notifier, logger)
	return f
}

func TestReact_NewReactionNotifiesAuthor(t *testing.T) {
	f := newFixture()

	outcome, err := f.svc.React(context.Background(), "actor-1", post.CreateReactionRequest{
		PostID: "post-1",
		Type:   "like",
	})
	require.NoError(t, err)
	assert.Equal(t, post.ReactionCreated, outcome)

	require.Len(t, f.notifier.requests, 1)
	req := f.notifier.requests[0]
	assert.Equal(t, "author-1", req.RecipientID)
	assert.Equal(t, "actor-1", req.SenderID)
	assert.Equal(t, notification.TypeReaction, req.Type)
	assert.Equal(t, "reacted to your post with like", req.Message)
	assert.Equal(t, "post-1", req.Data["post_id"])
}

func TestReact_SelfReactionDoesNotNotify(t *testing.T) {
	f := newFixture()

	outcome, err := f.svc.React(context.Background(), "author-1", post.CreateReactionRequest{
		PostID: "post-1",
		Type:   "love",
	})
	require.NoError(t, err)
	assert.Equal(t, post.ReactionCreated, outcome)
	assert.Empty(t, f.notifier.requests)
}

func TestReact_RepeatingSameReactionRemovesIt(t *testing.T) {
	f := newFixture()

	_, err := f.svc.React(context.Background(), "actor-1", post.CreateReactionRequest{PostID: "post-1", Type: "like"})
	require.NoError(t, err)

	outcome, err := f.svc.React(context.Background(), "actor-1", post.CreateReactionRequest{PostID: "post-1", Type: "like"})
	require.NoError(t, err)
	assert.Equal(t, post.ReactionRemoved, outcome)
	assert.Len(t, f.reactions.deleted, 1)

	// Only the initial creation notified
	assert.Len(t, f.notifier.requests, 1)
}

func TestReact_DifferentReactionReplacesWithoutNotifying(t *testing.T) {
	f := newFixture()

	_, err := f.svc.React(context.Background(), "actor-1", post.CreateReactionRequest{PostID: "post-1", Type: "like"})
	require.NoError(t, err)

	outcome, err := f.svc.React(context.Background(), "actor-1", post.CreateReactionRequest{PostID: "post-1", Type: "wow"})
	require.NoError(t, err)
	assert.Equal(t, post.ReactionUpdated, outcome)
	assert.Len(t, f.reactions.updated, 1)
	assert.Len(t, f.notifier.requests, 1)
}

func TestReact_UnknownPostFails(t *testing.T) {
	f := newFixture()

	_, err := f.svc.React(context.Background(), "actor-1", post.CreateReactionRequest{PostID: "missing", Type: "like"})
	assert.ErrorIs(t, err, post.ErrPostNotFound)
	assert.Empty(t, f.notifier.requests)
}

func TestCreateComment_NotifiesAuthor(t *testing.T) {
	f := newFixture()

	comment, err := f.svc.CreateComment(context.Background(), "actor-1", post.CreateCommentRequest{
		PostID:  "post-1",
		Content: "nice one",
	})
	require.NoError(t, err)
	assert.Equal(t, "comment-1", comment.ID)

	require.Len(t, f.notifier.requests, 1)
	req := f.notifier.requests[0]
	assert.Equal(t, notification.TypeComment, req.Type)
	assert.Equal(t, "commented on your post", req.Message)
	assert.Equal(t, "comment-1", req.Data["comment_id"])
}

func TestCreateComment_SelfCommentDoesNotNotify(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateComment(context.Background(), "author-1", post.CreateCommentRequest{
		PostID:  "post-1",
		Content: "replying to myself",
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.requests)
}

func TestSharePost_NotifiesOnceAndRejectsDuplicates(t *testing.T) {
	f := newFixture()

	err := f.svc.SharePost(context.Background(), "actor-1", post.CreateShareRequest{PostID: "post-1"})
	require.NoError(t, err)
	require.Len(t, f.notifier.requests, 1)
	assert.Equal(t, notification.TypeShare, f.notifier.requests[0].Type)
	assert.Equal(t, "shared your post", f.notifier.requests[0].Message)

	err = f.svc.SharePost(context.Background(), "actor-1", post.CreateShareRequest{PostID: "post-1"})
	assert.ErrorIs(t, err, post.ErrAlreadyShared)
	assert.Len(t, f.notifier.requests, 1)
}

func TestSharePost_SelfShareDoesNotNotify(t *testing.T) {
	f := newFixture()

	err := f.svc.SharePost(context.Background(), "author-1", post.CreateShareRequest{PostID: "post-1"})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.requests)
}

func TestGetPostComments_ThreadsRepliesUnderParents(t *testing.T) {
	f := newFixture()
	parentID := "comment-parent"
	f.comments.comments = []*post.Comment{
		{ID: parentID, PostID: "post-1", AuthorID: "a", Content: "top"},
		{ID: "comment-reply", PostID: "post-1", AuthorID: "b", ParentID: &parentID, Content: "reply"},
	}

	comments, err := f.svc.GetPostComments(context.Background(), "post-1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, parentID, comments[0].ID)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "comment-reply", comments[0].Replies[0].ID)
}
