package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/auth"
	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/jwt"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/ws"
)

type service struct {
	repo   notification.Repository
	users  user.Repository
	jwtSvc jwt.Service
	hub    *ws.Hub
	logger *slog.Logger
}

// NewNotificationService creates the fan-out dispatcher backed by the
// given store and session hub.
func NewNotificationService(repo notification.Repository, users user.Repository, jwtService jwt.Service, hub *ws.Hub, logger *slog.Logger) notification.Service {
	return &service{
		repo:   repo,
		users:  users,
		jwtSvc: jwtService,
		hub:    hub,
		logger: logger,
	}
}

// Notify implements notification.Service.
//
// The sender summary is looked up once per event, never per channel. The
// notification is durable before any push is attempted: if the insert
// fails nothing is delivered, and if delivery fails the recipient still
// sees the notification on their next list.
func (s *service) Notify(ctx context.Context, req notification.NotifyRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var sender *user.Summary
	var senderID *string
	if req.SenderID != "" {
		summary, err := s.users.GetSummary(ctx, req.SenderID)
		if err != nil {
			return "", fmt.Errorf("failed to resolve notification sender: %w", err)
		}
		sender = &summary
		senderID = &req.SenderID
	}

	title := req.Title
	if title == "" && sender != nil {
		title = sender.FirstName + " " + sender.LastName
	}

	n := &notification.Notification{
		RecipientID: req.RecipientID,
		SenderID:    senderID,
		Type:        req.Type,
		Title:       title,
		Message:     req.Message,
		Data:        req.Data,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return "", fmt.Errorf("failed to persist notification: %w", err)
	}

	event := notification.PushEvent{
		Event:     "notification",
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Sender:    sender,
		Data:      n.Data,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		// The record is already durable, so a push encoding failure is
		// logged and absorbed.
		s.logger.Error("failed to encode push event",
			slog.String("notification_id", n.ID),
			slog.Any("error", err))
		return n.ID, nil
	}

	s.hub.Broadcast(n.RecipientID, payload)

	return n.ID, nil
}

// AuthenticateChannel implements notification.Service.
func (s *service) AuthenticateChannel(ctx context.Context, token, claimedUserID string) error {
	subject, err := s.jwtSvc.VerifyAccessToken(token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	userData, err := s.users.GetByID(ctx, subject)
	if err != nil {
		if err == user.ErrUserNotFound {
			return auth.ErrInvalidToken
		}
		return fmt.Errorf("failed to load channel user: %w", err)
	}

	if !userData.IsActive {
		return auth.ErrInactiveUser
	}

	if userData.ID != claimedUserID {
		return auth.ErrChannelIdentityMismatch
	}

	return nil
}

// List implements notification.Service.
func (s *service) List(ctx context.Context, recipientID string, limit, offset int) ([]notification.NotificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	notifications, err := s.repo.List(ctx, recipientID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.ToNotificationResponse(n, n.Sender))
	}

	return responses, nil
}

// UnreadCount implements notification.Service.
func (s *service) UnreadCount(ctx context.Context, recipientID string) (notification.UnreadCountResponse, error) {
	count, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return notification.UnreadCountResponse{}, err
	}
	return notification.UnreadCountResponse{Count: count}, nil
}

// MarkAsRead implements notification.Service.
func (s *service) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	return s.repo.MarkRead(ctx, notificationID, recipientID)
}

// MarkAllAsRead implements notification.Service.
func (s *service) MarkAllAsRead(ctx context.Context, recipientID string) (notification.MarkAllReadResponse, error) {
	updated, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return notification.MarkAllReadResponse{}, err
	}
	return notification.MarkAllReadResponse{Updated: updated}, nil
}

// Delete implements notification.Service.
func (s *service) Delete(ctx context.Context, recipientID, notificationID string) error {
	return s.repo.Delete(ctx, notificationID, recipientID)
}

// DeleteByPost implements notification.Service.
func (s *service) DeleteByPost(ctx context.Context, postID string) error {
	return s.repo.DeleteByPost(ctx, postID)
}
