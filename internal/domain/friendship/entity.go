package friendship

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusNone     Status = "none"
)

type Friendship struct {
	ID          string
	RequesterID string
	AddresseeID string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined
	Requester user.Summary
}
