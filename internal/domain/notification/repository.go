package notification

import (
	"context"
)

type Repository interface {
	// Create persists the notification, filling ID and CreatedAt.
	Create(ctx context.Context, n *Notification) error
	// List returns the recipient's notifications newest first, with the
	// sender summary joined in.
	List(ctx context.Context, recipientID string, limit, offset int) ([]*Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	// MarkRead marks a single notification read. Scoped to the owner so a
	// user cannot touch someone else's notifications.
	MarkRead(ctx context.Context, id, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id, recipientID string) error
	// DeleteByPost removes notifications whose data references the given
	// post. Called when a post is deleted.
	DeleteByPost(ctx context.Context, postID string) error
}
