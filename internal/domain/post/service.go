package post

import (
	"context"
)

// Service covers posts and the interactions on them. The reaction,
// comment and share operations are the notification event producers:
// they exclude self-actions before asking the dispatcher to notify.
type Service interface {
	CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (PostResponse, error)
	GetFeed(ctx context.Context, limit int) ([]PostResponse, error)
	GetUserPosts(ctx context.Context, userID string, limit int) ([]PostResponse, error)
	GetUserTestimonials(ctx context.Context, userID string, limit int) ([]PostResponse, error)
	DeletePost(ctx context.Context, actorID, postID string) error

	React(ctx context.Context, actorID string, req CreateReactionRequest) (ReactionOutcome, error)
	GetPostReactions(ctx context.Context, actorID, postID string) (ReactionSummaryResponse, error)

	CreateComment(ctx context.Context, actorID string, req CreateCommentRequest) (CommentResponse, error)
	GetPostComments(ctx context.Context, postID string) ([]CommentResponse, error)

	SharePost(ctx context.Context, actorID string, req CreateShareRequest) error
}
