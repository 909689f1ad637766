package friendship

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, f *Friendship) error
	GetByID(ctx context.Context, id string) (*Friendship, error)
	GetBetween(ctx context.Context, userA, userB string) (*Friendship, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	ListPending(ctx context.Context, addresseeID string) ([]*Friendship, error)
	CountPending(ctx context.Context, addresseeID string) (int, error)
}
