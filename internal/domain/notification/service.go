package notification

import (
	"context"
)

// Service is the fan-out dispatcher plus the notification store API.
//
// Notify persists the notification first, then pushes it to every open
// channel of the recipient. A persistence failure aborts the push and is
// returned to the caller; a push failure is absorbed, since the record is
// already durable and will be seen on the next list.
type Service interface {
	Notify(ctx context.Context, req NotifyRequest) (string, error)

	// AuthenticateChannel verifies a channel-open token and checks that
	// its subject matches the user id the client claims to stream for.
	AuthenticateChannel(ctx context.Context, token, claimedUserID string) error

	List(ctx context.Context, recipientID string, limit, offset int) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, recipientID string) (UnreadCountResponse, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) (MarkAllReadResponse, error)
	Delete(ctx context.Context, recipientID, notificationID string) error
	DeleteByPost(ctx context.Context, postID string) error
}
