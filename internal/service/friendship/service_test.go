package friendship

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/conecta-social/conecta-backend-go/internal/domain/friendship"
	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFriendshipRepo struct {
	friendship.Repository

	byID    map[string]*friendship.Friendship
	updates map[string]friendship.Status
}

func (f *fakeFriendshipRepo) Create(ctx context.Context, fr *friendship.Friendship) error {
	fr.ID = "friendship-1"
	f.byID[fr.ID] = fr
	return nil
}

func (f *fakeFriendshipRepo) GetByID(ctx context.Context, id string) (*friendship.Friendship, error) {
	fr, ok := f.byID[id]
	if !ok {
		return nil, friendship.ErrFriendshipNotFound
	}
	return fr, nil
}

func (f *fakeFriendshipRepo) GetBetween(ctx context.Context, userA, userB string) (*friendship.Friendship, error) {
	for _, fr := range f.byID {
		if (fr.RequesterID == userA && fr.AddresseeID == userB) ||
			(fr.RequesterID == userB && fr.AddresseeID == userA) {
			return fr, nil
		}
	}
	return nil, friendship.ErrFriendshipNotFound
}

func (f *fakeFriendshipRepo) UpdateStatus(ctx context.Context, id string, status friendship.Status) error {
	f.updates[id] = status
	if fr, ok := f.byID[id]; ok {
		fr.Status = status
	}
	return nil
}

type fakeUsers struct {
	user.Repository

	known map[string]bool
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (user.User, error) {
	if !f.known[id] {
		return user.User{}, user.ErrUserNotFound
	}
	return user.User{ID: id, IsActive: true}, nil
}

type fakeNotifier struct {
	notification.Service

	requests []notification.NotifyRequest
}

func (f *fakeNotifier) Notify(ctx context.Context, req notification.NotifyRequest) (string, error) {
	f.requests = append(f.requests, req)
	return "notif-1", nil
}

type fixture struct {
	repo     *fakeFriendshipRepo
	notifier *fakeNotifier
	svc      friendship.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:     &fakeFriendshipRepo{byID: map[string]*friendship.Friendship{}, updates: map[string]friendship.Status{}},
		notifier: &fakeNotifier{},
	}
	users := &fakeUsers{known: map[string]bool{"user-1": true, "user-2": true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewFriendshipService(f.repo, users, f.notifier, logger)
	return f
}

func TestSendRequest_NotifiesAddressee(t *testing.T) {
	f := newFixture()

	err := f.svc.SendRequest(context.Background(), "user-1", friendship.CreateFriendshipRequest{AddresseeID: "user-2"})
	require.NoError(t, err)

	require.Len(t, f.notifier.requests, 1)
	req := f.notifier.requests[0]
	assert.Equal(t, "user-2", req.RecipientID)
	assert.Equal(t, "user-1", req.SenderID)
	assert.Equal(t, notification.TypeFriendRequest, req.Type)
	assert.Equal(t, "sent you a friend request", req.Message)
}

func TestSendRequest_ToSelfFails(t *testing.T) {
	f := newFixture()

	err := f.svc.SendRequest(context.Background(), "user-1", friendship.CreateFriendshipRequest{AddresseeID: "user-1"})
	assert.ErrorIs(t, err, friendship.ErrSelfFriendship)
}

func TestSendRequest_ToUnknownUserFails(t *testing.T) {
	f := newFixture()

	err := f.svc.SendRequest(context.Background(), "user-1", friendship.CreateFriendshipRequest{AddresseeID: "ghost"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSendRequest_DuplicatePendingFails(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.SendRequest(context.Background(), "user-1", friendship.CreateFriendshipRequest{AddresseeID: "user-2"}))

	err := f.svc.SendRequest(context.Background(), "user-1", friendship.CreateFriendshipRequest{AddresseeID: "user-2"})
	assert.ErrorIs(t, err, friendship.ErrAlreadyRequested)

	// Reverse direction hits the same pending request
	err = f.svc.SendRequest(context.Background(), "user-2", friendship.CreateFriendshipRequest{AddresseeID: "user-1"})
	assert.ErrorIs(t, err, friendship.ErrAlreadyRequested)
}

func TestSendRequest_WhenAlreadyFriendsFails(t *testing.T) {
	f := newFixture()
	f.repo.byID["friendship-1"] = &friendship.Friendship{
		ID: "friendship-1", RequesterID: "user-1", AddresseeID: "user-2", Status: friendship.StatusAccepted,
	}

	err := f.svc.SendRequest(context.Background(), "user-1", friendship.CreateFriendshipRequest{AddresseeID: "user-2"})
	assert.ErrorIs(t, err, friendship.ErrAlreadyFriends)
}

func TestSendRequest_RejectedCanBeResent(t *testing.T) {
	f := newFixture()
	f.repo.byID["friendship-1"] = &friendship.Friendship{
		ID: "friendship-1", RequesterID: "user-1", AddresseeID: "user-2", Status: friendship.StatusRejected,
	}

	err := f.svc.SendRequest(context.Background(), "user-1", friendship.CreateFriendshipRequest{AddresseeID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, friendship.StatusPending, f.repo.updates["friendship-1"])
	assert.Len(t, f.notifier.requests, 1)
}

func TestAcceptRequest_NotifiesRequester(t *testing.T) {
	f := newFixture()
	f.repo.byID["friendship-1"] = &friendship.Friendship{
		ID: "friendship-1", RequesterID: "user-1", AddresseeID: "user-2", Status: friendship.StatusPending,
	}

	err := f.svc.AcceptRequest(context.Background(), "user-2", "friendship-1")
	require.NoError(t, err)
	assert.Equal(t, friendship.StatusAccepted, f.repo.updates["friendship-1"])

	require.Len(t, f.notifier.requests, 1)
	req := f.notifier.requests[0]
	assert.Equal(t, "user-1", req.RecipientID)
	assert.Equal(t, notification.TypeFriendAccept, req.Type)
	assert.Equal(t, "accepted your friend request", req.Message)
}

func TestAcceptRequest_OnlyAddresseeMayAccept(t *testing.T) {
	f := newFixture()
	f.repo.byID["friendship-1"] = &friendship.Friendship{
		ID: "friendship-1", RequesterID: "user-1", AddresseeID: "user-2", Status: friendship.StatusPending,
	}

	err := f.svc.AcceptRequest(context.Background(), "user-1", "friendship-1")
	assert.ErrorIs(t, err, friendship.ErrNotAddressee)
	assert.Empty(t, f.notifier.requests)
}

func TestAcceptRequest_AlreadyProcessedFails(t *testing.T) {
	f := newFixture()
	f.repo.byID["friendship-1"] = &friendship.Friendship{
		ID: "friendship-1", RequesterID: "user-1", AddresseeID: "user-2", Status: friendship.StatusAccepted,
	}

	err := f.svc.AcceptRequest(context.Background(), "user-2", "friendship-1")
	assert.ErrorIs(t, err, friendship.ErrNotPending)
}

func TestRejectRequest_IsSilent(t *testing.T) {
	f := newFixture()
	f.repo.byID["friendship-1"] = &friendship.Friendship{
		ID: "friendship-1", RequesterID: "user-1", AddresseeID: "user-2", Status: friendship.StatusPending,
	}

	err := f.svc.RejectRequest(context.Background(), "user-2", "friendship-1")
	require.NoError(t, err)
	assert.Equal(t, friendship.StatusRejected, f.repo.updates["friendship-1"])
	assert.Empty(t, f.notifier.requests)
}

func TestGetStatusWith_NoFriendshipMeansNone(t *testing.T) {
	f := newFixture()

	status, err := f.svc.GetStatusWith(context.Background(), "user-1", "user-2")
	require.NoError(t, err)
	assert.Equal(t, friendship.StatusNone, status.Status)
}
