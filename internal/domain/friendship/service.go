package friendship

import (
	"context"
)

// Service manages friend requests. Send and Accept are notification
// event producers.
type Service interface {
	SendRequest(ctx context.Context, requesterID string, req CreateFriendshipRequest) error
	AcceptRequest(ctx context.Context, actorID, friendshipID string) error
	RejectRequest(ctx context.Context, actorID, friendshipID string) error
	GetStatusWith(ctx context.Context, actorID, otherUserID string) (StatusResponse, error)
	ListPending(ctx context.Context, actorID string) ([]PendingRequestResponse, error)
	CountPending(ctx context.Context, actorID string) (PendingCountResponse, error)
}
