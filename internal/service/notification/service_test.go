package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/conecta-social/conecta-backend-go/internal/domain/auth"
	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/jwt"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

// fakeNotificationRepo is an in-memory notification store
type fakeNotificationRepo struct {
	notification.Repository

	mu         sync.Mutex
	created    []*notification.Notification
	failCreate bool
	unread     int
	markedAll  int64
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("insert failed")
	}
	n.ID = "notif-1"
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return f.unread, nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	f.markedAll++
	return 3, nil
}

// fakeUserRepo serves a fixed set of users
type fakeUserRepo struct {
	user.Repository

	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetSummary(ctx context.Context, id string) (user.Summary, error) {
	u, ok := f.users[id]
	if !ok {
		return user.Summary{}, user.ErrUserNotFound
	}
	return u.Summary(), nil
}

// recordingChannel captures broadcast payloads
type recordingChannel struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (c *recordingChannel) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *recordingChannel) Close() error { return nil }

func (c *recordingChannel) received() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payloads
}

func newTestService(repo *fakeNotificationRepo, users *fakeUserRepo, hub *ws.Hub) notification.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtService := jwt.NewJWTService(testSecret, "1h")
	return NewNotificationService(repo, users, jwtService, hub, logger)
}

func activeUser(id, first, last string) user.User {
	return user.User{
		ID:        id,
		FirstName: first,
		LastName:  last,
		IsActive:  true,
	}
}

func TestNotify_PersistsAndPushes(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{
		"sender-1": activeUser("sender-1", "Ana", "Souza"),
	}}
	hub := ws.NewHub()
	ch := &recordingChannel{}
	hub.Register("recipient-1", ch)

	svc := newTestService(repo, users, hub)

	id, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "recipient-1",
		SenderID:    "sender-1",
		Type:        notification.TypeComment,
		Message:     "commented on your post",
		Data:        map[string]interface{}{"post_id": "post-9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "notif-1", id)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "Ana Souza", repo.created[0].Title)

	payloads := ch.received()
	require.Len(t, payloads, 1)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(payloads[0], &event))
	assert.Equal(t, "notification", event["event"])
	assert.Equal(t, "comment", event["type"])
	assert.Equal(t, "notif-1", event["id"])
	assert.Equal(t, "commented on your post", event["message"])

	sender, ok := event["sender"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sender-1", sender["id"])
	assert.Equal(t, "Ana", sender["first_name"])

	data, ok := event["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "post-9", data["post_id"])
}

func TestNotify_ExplicitTitleIsKept(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{
		"sender-1": activeUser("sender-1", "Ana", "Souza"),
	}}

	svc := newTestService(repo, users, ws.NewHub())

	_, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "recipient-1",
		SenderID:    "sender-1",
		Type:        notification.TypeShare,
		Title:       "Custom title",
		Message:     "shared your post",
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom title", repo.created[0].Title)
}

func TestNotify_StoreFailureAbortsPush(t *testing.T) {
	repo := &fakeNotificationRepo{failCreate: true}
	users := &fakeUserRepo{users: map[string]user.User{
		"sender-1": activeUser("sender-1", "Ana", "Souza"),
	}}
	hub := ws.NewHub()
	ch := &recordingChannel{}
	hub.Register("recipient-1", ch)

	svc := newTestService(repo, users, hub)

	id, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "recipient-1",
		SenderID:    "sender-1",
		Type:        notification.TypeReaction,
		Message:     "reacted to your post with like",
	})
	assert.Error(t, err)
	assert.Empty(t, id)
	assert.Empty(t, ch.received())
}

func TestNotify_UnknownSenderFails(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{}}

	svc := newTestService(repo, users, ws.NewHub())

	_, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "recipient-1",
		SenderID:    "ghost",
		Type:        notification.TypeComment,
		Message:     "commented on your post",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestNotify_InvalidRequestFails(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{}}

	svc := newTestService(repo, users, ws.NewHub())

	_, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "recipient-1",
		SenderID:    "sender-1",
		Type:        "party_invite",
		Message:     "come over",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestNotify_SystemEventWithoutSender(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{}}
	hub := ws.NewHub()
	ch := &recordingChannel{}
	hub.Register("recipient-1", ch)

	svc := newTestService(repo, users, hub)

	id, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "recipient-1",
		Type:        notification.TypeComment,
		Title:       "Moderation",
		Message:     "your comment was removed",
	})
	require.NoError(t, err)
	assert.Equal(t, "notif-1", id)

	require.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].SenderID)

	payloads := ch.received()
	require.Len(t, payloads, 1)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(payloads[0], &event))
	assert.Equal(t, "Moderation", event["title"])
	_, hasSender := event["sender"]
	assert.False(t, hasSender)
}

func TestNotify_SenderlessEventNeedsTitle(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{}}

	svc := newTestService(repo, users, ws.NewHub())

	_, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "recipient-1",
		Type:        notification.TypeComment,
		Message:     "your comment was removed",
	})
	assert.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestNotify_OfflineRecipientStillPersists(t *testing.T) {
	repo := &fakeNotificationRepo{}
	users := &fakeUserRepo{users: map[string]user.User{
		"sender-1": activeUser("sender-1", "Ana", "Souza"),
	}}

	svc := newTestService(repo, users, ws.NewHub())

	id, err := svc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "offline-user",
		SenderID:    "sender-1",
		Type:        notification.TypeFriendRequest,
		Message:     "sent you a friend request",
	})
	require.NoError(t, err)
	assert.Equal(t, "notif-1", id)
	assert.Len(t, repo.created, 1)
}

func TestAuthenticateChannel(t *testing.T) {
	users := &fakeUserRepo{users: map[string]user.User{
		"user-1": activeUser("user-1", "Ana", "Souza"),
		"user-2": {ID: "user-2", FirstName: "Beto", LastName: "Lima", IsActive: false},
	}}
	jwtService := jwt.NewJWTService(testSecret, "1h")
	svc := NewNotificationService(&fakeNotificationRepo{}, users, jwtService, ws.NewHub(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	tokenFor := func(id string) string {
		token, _, err := jwtService.GenerateAccessToken(id, id+"@example.com")
		require.NoError(t, err)
		return token
	}

	t.Run("valid token matching claim", func(t *testing.T) {
		err := svc.AuthenticateChannel(context.Background(), tokenFor("user-1"), "user-1")
		assert.NoError(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		err := svc.AuthenticateChannel(context.Background(), "not-a-token", "user-1")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		stale := jwt.NewJWTService(testSecret, "-10m")
		token, _, err := stale.GenerateAccessToken("user-1", "user-1@example.com")
		require.NoError(t, err)

		err = svc.AuthenticateChannel(context.Background(), token, "user-1")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := jwt.NewJWTService("another-secret", "1h")
		token, _, err := other.GenerateAccessToken("user-1", "user-1@example.com")
		require.NoError(t, err)

		err = svc.AuthenticateChannel(context.Background(), token, "user-1")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("subject does not match claimed user", func(t *testing.T) {
		err := svc.AuthenticateChannel(context.Background(), tokenFor("user-1"), "user-2")
		assert.ErrorIs(t, err, auth.ErrChannelIdentityMismatch)
	})

	t.Run("inactive user", func(t *testing.T) {
		err := svc.AuthenticateChannel(context.Background(), tokenFor("user-2"), "user-2")
		assert.ErrorIs(t, err, auth.ErrInactiveUser)
	})

	t.Run("deleted user", func(t *testing.T) {
		err := svc.AuthenticateChannel(context.Background(), tokenFor("ghost"), "ghost")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	repo := &fakeNotificationRepo{unread: 5}
	users := &fakeUserRepo{users: map[string]user.User{}}
	svc := newTestService(repo, users, ws.NewHub())

	count, err := svc.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, count.Count)

	result, err := svc.MarkAllAsRead(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Updated)
	assert.Equal(t, int64(1), repo.markedAll)
}
