package notification

import (
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/validator"
)

// ============= Request DTOs =============

// NotifyRequest is what event producers hand to the dispatcher. Title may
// be left empty, in which case the sender's full name is used. SenderID is
// empty for system-generated events, which must carry their own Title.
type NotifyRequest struct {
	RecipientID string
	SenderID    string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
}

func (r NotifyRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.RecipientID) {
		errs = append(errs, validator.ValidationError{Field: "recipient_id", Message: "is required"})
	}
	if validator.IsEmpty(r.SenderID) && validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required when sender_id is empty"})
	}
	if !validator.IsInSlice(string(r.Type), typeStrings()) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of reaction, comment, friend_request, friend_accept, share"})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{Field: "message", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func typeStrings() []string {
	out := make([]string, 0, len(AllTypes))
	for _, t := range AllTypes {
		out = append(out, string(t))
	}
	return out
}

// ============= Response DTOs =============

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Sender    *user.Summary          `json:"sender,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// PushEvent is the wire shape delivered over open channels. Event is
// always "notification" so clients can multiplex future event kinds on
// the same socket.
type PushEvent struct {
	Event     string                 `json:"event"`
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Sender    *user.Summary          `json:"sender,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

func ToNotificationResponse(n *Notification, sender *user.Summary) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Sender:    sender,
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
