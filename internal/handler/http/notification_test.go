package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/jwt"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/ws"
	notificationService "github.com/conecta-social/conecta-backend-go/internal/service/notification"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type fakeNotificationRepo struct {
	notification.Repository
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	n.ID = "notif-1"
	n.CreatedAt = time.Now()
	return nil
}

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

type streamFixture struct {
	server   *httptest.Server
	hub      *ws.Hub
	jwtSvc   jwt.Service
	notifSvc notification.Service
}

func newStreamFixture(t *testing.T) *streamFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtSvc := jwt.NewJWTService(testSecret, "1h")
	hub := ws.NewHub()
	users := &fakeUserRepo{users: map[string]user.User{
		"user-1": {ID: "user-1", FirstName: "Ana", LastName: "Souza", IsActive: true},
		"user-2": {ID: "user-2", FirstName: "Beto", LastName: "Lima", IsActive: true},
	}}
	notifSvc := notificationService.NewNotificationService(&fakeNotificationRepo{}, users, jwtSvc, hub, logger)
	handler := NewNotificationHandler(notifSvc, hub, logger)

	r := chi.NewRouter()
	r.Get("/api/v1/ws/{userID}", handler.Stream)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	t.Cleanup(hub.Close)

	return &streamFixture{server: server, hub: hub, jwtSvc: jwtSvc, notifSvc: notifSvc}
}

func (f *streamFixture) wsURL(userID, token string) string {
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/api/v1/ws/" + userID
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func (f *streamFixture) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := f.jwtSvc.GenerateAccessToken(userID, userID+"@example.com")
	require.NoError(t, err)
	return token
}

func waitForSessions(t *testing.T, hub *ws.Hub, userID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.SessionCount(userID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d sessions for %s, have %d", want, userID, hub.SessionCount(userID))
}

func expectPolicyViolationClose(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok, "expected a close frame, got %v", err)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
}

func TestStream_DeliversPushedNotifications(t *testing.T) {
	f := newStreamFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL("user-1", f.tokenFor(t, "user-1")), nil)
	require.NoError(t, err)
	defer conn.Close()

	waitForSessions(t, f.hub, "user-1", 1)

	_, err = f.notifSvc.Notify(context.Background(), notification.NotifyRequest{
		RecipientID: "user-1",
		SenderID:    "user-2",
		Type:        notification.TypeFriendRequest,
		Message:     "sent you a friend request",
	})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &event))
	assert.Equal(t, "notification", event["event"])
	assert.Equal(t, "friend_request", event["type"])
	assert.Equal(t, "Beto Lima", event["title"])
}

func TestStream_MissingTokenIsRejected(t *testing.T) {
	f := newStreamFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL("user-1", ""), nil)
	require.NoError(t, err)
	defer conn.Close()

	expectPolicyViolationClose(t, conn)
	assert.Equal(t, 0, f.hub.SessionCount("user-1"))
}

func TestStream_InvalidTokenIsRejected(t *testing.T) {
	f := newStreamFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL("user-1", "garbage"), nil)
	require.NoError(t, err)
	defer conn.Close()

	expectPolicyViolationClose(t, conn)
	assert.Equal(t, 0, f.hub.SessionCount("user-1"))
}

func TestStream_TokenForAnotherUserIsRejected(t *testing.T) {
	f := newStreamFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL("user-1", f.tokenFor(t, "user-2")), nil)
	require.NoError(t, err)
	defer conn.Close()

	expectPolicyViolationClose(t, conn)
	assert.Equal(t, 0, f.hub.SessionCount("user-1"))
	assert.Equal(t, 0, f.hub.SessionCount("user-2"))
}

func TestStream_DisconnectUnregistersChannel(t *testing.T) {
	f := newStreamFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL("user-1", f.tokenFor(t, "user-1")), nil)
	require.NoError(t, err)

	waitForSessions(t, f.hub, "user-1", 1)

	require.NoError(t, conn.Close())
	waitForSessions(t, f.hub, "user-1", 0)
}
