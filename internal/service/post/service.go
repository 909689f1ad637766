package post

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
	"github.com/conecta-social/conecta-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

const (
	defaultFeedLimit = 50
	defaultListLimit = 20
)

type PostServiceImpl struct {
	db        *database.DB
	posts     post.PostRepository
	reactions post.ReactionRepository
	comments  post.CommentRepository
	shares    post.ShareRepository
	users     user.SummaryProvider
	notifier  notification.Service
	logger    *slog.Logger
}

func NewPostService(
	db *database.DB,
	posts post.PostRepository,
	reactions post.ReactionRepository,
	comments post.CommentRepository,
	shares post.ShareRepository,
	users user.SummaryProvider,
	notifier notification.Service,
	logger *slog.Logger,
) post.Service {
	return &PostServiceImpl{
		db:        db,
		posts:     posts,
		reactions: reactions,
		comments:  comments,
		shares:    shares,
		users:     users,
		notifier:  notifier,
		logger:    logger,
	}
}

// notify hands an event to the dispatcher. Notification failures never
// fail the interaction that produced them.
func (s *PostServiceImpl) notify(ctx context.Context, req notification.NotifyRequest) {
	if _, err := s.notifier.Notify(ctx, req); err != nil {
		s.logger.Error("failed to dispatch notification",
			slog.String("type", string(req.Type)),
			slog.String("recipient_id", req.RecipientID),
			slog.Any("error", err))
	}
}

// CreatePost implements post.Service.
func (s *PostServiceImpl) CreatePost(ctx context.Context, authorID string, req post.CreatePostRequest) (post.PostResponse, error) {
	if err := req.Validate(); err != nil {
		return post.PostResponse{}, err
	}

	postType := post.PostType(req.PostType)
	if postType == "" {
		postType = post.TypePost
	}
	privacyLevel := req.PrivacyLevel
	if privacyLevel == "" {
		privacyLevel = string(user.PrivacyPublic)
	}

	p := &post.Post{
		AuthorID:      authorID,
		Content:       req.Content,
		PostType:      postType,
		MediaType:     req.MediaType,
		MediaURL:      req.MediaURL,
		MediaMetadata: req.MediaMetadata,
		PrivacyLevel:  privacyLevel,
	}

	if err := s.posts.Create(ctx, p); err != nil {
		return post.PostResponse{}, err
	}

	created, err := s.posts.GetByID(ctx, p.ID)
	if err != nil {
		return post.PostResponse{}, err
	}

	return post.ToPostResponse(*created), nil
}

// GetFeed implements post.Service.
func (s *PostServiceImpl) GetFeed(ctx context.Context, limit int) ([]post.PostResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultFeedLimit
	}

	posts, err := s.posts.ListFeed(ctx, limit)
	if err != nil {
		return nil, err
	}

	return toResponses(posts), nil
}

// GetUserPosts implements post.Service.
func (s *PostServiceImpl) GetUserPosts(ctx context.Context, userID string, limit int) ([]post.PostResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultListLimit
	}

	posts, err := s.posts.ListByAuthor(ctx, userID, post.TypePost, limit)
	if err != nil {
		return nil, err
	}

	return toResponses(posts), nil
}

// GetUserTestimonials implements post.Service.
func (s *PostServiceImpl) GetUserTestimonials(ctx context.Context, userID string, limit int) ([]post.PostResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultListLimit
	}

	posts, err := s.posts.ListByAuthor(ctx, userID, post.TypeTestimonial, limit)
	if err != nil {
		return nil, err
	}

	return toResponses(posts), nil
}

func toResponses(posts []*post.Post) []post.PostResponse {
	responses := make([]post.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, post.ToPostResponse(*p))
	}
	return responses
}

// DeletePost implements post.Service. Interactions and notifications
// referencing the post are removed in the same transaction.
func (s *PostServiceImpl) DeletePost(ctx context.Context, actorID, postID string) error {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.AuthorID != actorID {
		return post.ErrNotPostAuthor
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.reactions.DeleteByPost(txCtx, postID); err != nil {
			return err
		}
		if err := s.comments.DeleteByPost(txCtx, postID); err != nil {
			return err
		}
		if err := s.shares.DeleteByPost(txCtx, postID); err != nil {
			return err
		}
		if err := s.notifier.DeleteByPost(txCtx, postID); err != nil {
			return err
		}
		return s.posts.Delete(txCtx, postID)
	})
}

// React implements post.Service. Reacting is an upsert: repeating the
// same reaction removes it, a different one replaces it. Only a newly
// created reaction notifies the post author, and never for self-actions.
func (s *PostServiceImpl) React(ctx context.Context, actorID string, req post.CreateReactionRequest) (post.ReactionOutcome, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	p, err := s.posts.GetByID(ctx, req.PostID)
	if err != nil {
		return "", err
	}

	reactionType := post.ReactionType(req.Type)

	existing, err := s.reactions.GetByUserAndPost(ctx, actorID, req.PostID)
	if err != nil {
		return "", err
	}

	if existing != nil {
		if existing.Type == reactionType {
			if err := s.reactions.Delete(ctx, existing.ID); err != nil {
				return "", err
			}
			return post.ReactionRemoved, nil
		}
		if err := s.reactions.UpdateType(ctx, existing.ID, reactionType); err != nil {
			return "", err
		}
		return post.ReactionUpdated, nil
	}

	reaction := &post.Reaction{
		UserID: actorID,
		PostID: req.PostID,
		Type:   reactionType,
	}
	if err := s.reactions.Create(ctx, reaction); err != nil {
		return "", err
	}

	if p.AuthorID != actorID {
		s.notify(ctx, notification.NotifyRequest{
			RecipientID: p.AuthorID,
			SenderID:    actorID,
			Type:        notification.TypeReaction,
			Message:     fmt.Sprintf("reacted to your post with %s", reactionType),
			Data: map[string]interface{}{
				"post_id":       req.PostID,
				"reaction_type": string(reactionType),
			},
		})
	}

	return post.ReactionCreated, nil
}

// GetPostReactions implements post.Service.
func (s *PostServiceImpl) GetPostReactions(ctx context.Context, actorID, postID string) (post.ReactionSummaryResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return post.ReactionSummaryResponse{}, err
	}

	reactions, err := s.reactions.ListByPost(ctx, postID)
	if err != nil {
		return post.ReactionSummaryResponse{}, err
	}

	summary := post.ReactionSummaryResponse{
		Reactions: make(map[string]int),
	}
	for _, r := range reactions {
		summary.Reactions[string(r.Type)]++
		summary.Total++
		if r.UserID == actorID {
			reactionType := r.Type
			summary.UserReaction = &reactionType
		}
	}

	return summary, nil
}

// CreateComment implements post.Service.
func (s *PostServiceImpl) CreateComment(ctx context.Context, actorID string, req post.CreateCommentRequest) (post.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return post.CommentResponse{}, err
	}

	p, err := s.posts.GetByID(ctx, req.PostID)
	if err != nil {
		return post.CommentResponse{}, err
	}

	author, err := s.users.GetSummary(ctx, actorID)
	if err != nil {
		return post.CommentResponse{}, err
	}

	c := &post.Comment{
		PostID:   req.PostID,
		AuthorID: actorID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return post.CommentResponse{}, err
	}

	if p.AuthorID != actorID {
		s.notify(ctx, notification.NotifyRequest{
			RecipientID: p.AuthorID,
			SenderID:    actorID,
			Type:        notification.TypeComment,
			Message:     "commented on your post",
			Data: map[string]interface{}{
				"post_id":    req.PostID,
				"comment_id": c.ID,
			},
		})
	}

	return post.CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		Author:    author,
		CreatedAt: c.CreatedAt,
		Replies:   []post.CommentResponse{},
	}, nil
}

// GetPostComments implements post.Service. Comments come back threaded
// one level deep: top-level comments carry their replies.
func (s *PostServiceImpl) GetPostComments(ctx context.Context, postID string) ([]post.CommentResponse, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]post.CommentResponse)
	var topLevel []post.CommentResponse
	for _, c := range comments {
		resp := post.CommentResponse{
			ID:        c.ID,
			Content:   c.Content,
			Author:    c.Author,
			CreatedAt: c.CreatedAt,
			Replies:   []post.CommentResponse{},
		}
		if c.ParentID == nil {
			topLevel = append(topLevel, resp)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], resp)
		}
	}

	for i := range topLevel {
		if replies, ok := byParent[topLevel[i].ID]; ok {
			topLevel[i].Replies = replies
		}
	}

	return topLevel, nil
}

// SharePost implements post.Service.
func (s *PostServiceImpl) SharePost(ctx context.Context, actorID string, req post.CreateShareRequest) error {
	if req.PostID == "" {
		return post.ErrPostNotFound
	}

	p, err := s.posts.GetByID(ctx, req.PostID)
	if err != nil {
		return err
	}

	shared, err := s.shares.ExistsByUserAndPost(ctx, actorID, req.PostID)
	if err != nil {
		return err
	}
	if shared {
		return post.ErrAlreadyShared
	}

	share := &post.Share{
		UserID: actorID,
		PostID: req.PostID,
	}
	if err := s.shares.Create(ctx, share); err != nil {
		return err
	}

	if p.AuthorID != actorID {
		s.notify(ctx, notification.NotifyRequest{
			RecipientID: p.AuthorID,
			SenderID:    actorID,
			Type:        notification.TypeShare,
			Message:     "shared your post",
			Data: map[string]interface{}{
				"post_id": req.PostID,
			},
		})
	}

	return nil
}
