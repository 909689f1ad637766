package friendship

import (
	"context"
	"log/slog"

	"github.com/conecta-social/conecta-backend-go/internal/domain/friendship"
	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
)

type FriendshipServiceImpl struct {
	friendships friendship.Repository
	users       user.Repository
	notifier    notification.Service
	logger      *slog.Logger
}

func NewFriendshipService(friendships friendship.Repository, users user.Repository, notifier notification.Service, logger *slog.Logger) friendship.Service {
	return &FriendshipServiceImpl{
		friendships: friendships,
		users:       users,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *FriendshipServiceImpl) notify(ctx context.Context, req notification.NotifyRequest) {
	if _, err := s.notifier.Notify(ctx, req); err != nil {
		s.logger.Error("failed to dispatch notification",
			slog.String("type", string(req.Type)),
			slog.String("recipient_id", req.RecipientID),
			slog.Any("error", err))
	}
}

// SendRequest implements friendship.Service. A previously rejected
// request between the two users may be re-sent.
func (s *FriendshipServiceImpl) SendRequest(ctx context.Context, requesterID string, req friendship.CreateFriendshipRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.AddresseeID == requesterID {
		return friendship.ErrSelfFriendship
	}

	addressee, err := s.users.GetByID(ctx, req.AddresseeID)
	if err != nil {
		return err
	}
	if !addressee.IsActive {
		return user.ErrUserInactive
	}

	existing, err := s.friendships.GetBetween(ctx, requesterID, req.AddresseeID)
	if err != nil && err != friendship.ErrFriendshipNotFound {
		return err
	}

	if existing != nil {
		switch existing.Status {
		case friendship.StatusAccepted:
			return friendship.ErrAlreadyFriends
		case friendship.StatusPending:
			return friendship.ErrAlreadyRequested
		case friendship.StatusRejected:
			if err := s.friendships.UpdateStatus(ctx, existing.ID, friendship.StatusPending); err != nil {
				return err
			}
			s.notify(ctx, notification.NotifyRequest{
				RecipientID: req.AddresseeID,
				SenderID:    requesterID,
				Type:        notification.TypeFriendRequest,
				Message:     "sent you a friend request",
				Data: map[string]interface{}{
					"friendship_id": existing.ID,
				},
			})
			return nil
		}
	}

	f := &friendship.Friendship{
		RequesterID: requesterID,
		AddresseeID: req.AddresseeID,
		Status:      friendship.StatusPending,
	}
	if err := s.friendships.Create(ctx, f); err != nil {
		return err
	}

	s.notify(ctx, notification.NotifyRequest{
		RecipientID: req.AddresseeID,
		SenderID:    requesterID,
		Type:        notification.TypeFriendRequest,
		Message:     "sent you a friend request",
		Data: map[string]interface{}{
			"friendship_id": f.ID,
		},
	})

	return nil
}

// AcceptRequest implements friendship.Service.
func (s *FriendshipServiceImpl) AcceptRequest(ctx context.Context, actorID, friendshipID string) error {
	f, err := s.friendships.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if f.AddresseeID != actorID {
		return friendship.ErrNotAddressee
	}
	if f.Status != friendship.StatusPending {
		return friendship.ErrNotPending
	}

	if err := s.friendships.UpdateStatus(ctx, friendshipID, friendship.StatusAccepted); err != nil {
		return err
	}

	s.notify(ctx, notification.NotifyRequest{
		RecipientID: f.RequesterID,
		SenderID:    actorID,
		Type:        notification.TypeFriendAccept,
		Message:     "accepted your friend request",
		Data: map[string]interface{}{
			"friendship_id": f.ID,
		},
	})

	return nil
}

// RejectRequest implements friendship.Service. Rejection is silent: the
// requester is not notified.
func (s *FriendshipServiceImpl) RejectRequest(ctx context.Context, actorID, friendshipID string) error {
	f, err := s.friendships.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if f.AddresseeID != actorID {
		return friendship.ErrNotAddressee
	}
	if f.Status != friendship.StatusPending {
		return friendship.ErrNotPending
	}

	return s.friendships.UpdateStatus(ctx, friendshipID, friendship.StatusRejected)
}

// GetStatusWith implements friendship.Service.
func (s *FriendshipServiceImpl) GetStatusWith(ctx context.Context, actorID, otherUserID string) (friendship.StatusResponse, error) {
	f, err := s.friendships.GetBetween(ctx, actorID, otherUserID)
	if err != nil {
		if err == friendship.ErrFriendshipNotFound {
			return friendship.StatusResponse{Status: friendship.StatusNone}, nil
		}
		return friendship.StatusResponse{}, err
	}

	return friendship.StatusResponse{Status: f.Status}, nil
}

// ListPending implements friendship.Service.
func (s *FriendshipServiceImpl) ListPending(ctx context.Context, actorID string) ([]friendship.PendingRequestResponse, error) {
	requests, err := s.friendships.ListPending(ctx, actorID)
	if err != nil {
		return nil, err
	}

	responses := make([]friendship.PendingRequestResponse, 0, len(requests))
	for _, f := range requests {
		responses = append(responses, friendship.PendingRequestResponse{
			ID:        f.ID,
			Requester: f.Requester,
			CreatedAt: f.CreatedAt,
		})
	}

	return responses, nil
}

// CountPending implements friendship.Service.
func (s *FriendshipServiceImpl) CountPending(ctx context.Context, actorID string) (friendship.PendingCountResponse, error) {
	count, err := s.friendships.CountPending(ctx, actorID)
	if err != nil {
		return friendship.PendingCountResponse{}, err
	}
	return friendship.PendingCountResponse{Count: count}, nil
}
