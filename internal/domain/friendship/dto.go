package friendship

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

type CreateFriendshipRequest struct {
	AddresseeID string `json:"addressee_id"`
}

func (r CreateFriendshipRequest) Validate() error {
	if validator.IsEmpty(r.AddresseeID) {
		return validator.ValidationErrors{{Field: "addressee_id", Message: "is required"}}
	}
	return nil
}

// ============= Response DTOs =============

type StatusResponse struct {
	Status Status `json:"status"`
}

type PendingRequestResponse struct {
	ID        string       `json:"id"`
	Requester user.Summary `json:"requester"`
	CreatedAt time.Time    `json:"created_at"`
}

type PendingCountResponse struct {
	Count int `json:"count"`
}
