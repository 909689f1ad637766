package post

import (
	"context"
)

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id string) (*Post, error)
	ListFeed(ctx context.Context, limit int) ([]*Post, error)
	ListByAuthor(ctx context.Context, authorID string, postType PostType, limit int) ([]*Post, error)
	Delete(ctx context.Context, id string) error
}

type ReactionRepository interface {
	Create(ctx context.Context, r *Reaction) error
	GetByUserAndPost(ctx context.Context, userID, postID string) (*Reaction, error)
	UpdateType(ctx context.Context, id string, reactionType ReactionType) error
	Delete(ctx context.Context, id string) error
	ListByPost(ctx context.Context, postID string) ([]*Reaction, error)
	DeleteByPost(ctx context.Context, postID string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
	DeleteByPost(ctx context.Context, postID string) error
}

type ShareRepository interface {
	Create(ctx context.Context, s *Share) error
	ExistsByUserAndPost(ctx context.Context, userID, postID string) (bool, error)
	DeleteByPost(ctx context.Context, postID string) error
}
