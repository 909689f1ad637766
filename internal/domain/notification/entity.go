package notification

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
)

// Type discriminates what happened. The push payload carries it alongside
// the fixed "notification" event marker.
type Type string

const (
	TypeReaction      Type = "reaction"
	TypeComment       Type = "comment"
	TypeFriendRequest Type = "friend_request"
	TypeFriendAccept  Type = "friend_accept"
	TypeShare         Type = "share"
)

var AllTypes = []Type{
	TypeReaction,
	TypeComment,
	TypeFriendRequest,
	TypeFriendAccept,
	TypeShare,
}

type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	CreatedAt   time.Time

	// Joined
	Sender *user.Summary
}
