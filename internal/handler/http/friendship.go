package http

import (
	"encoding/json"
	"net/http"

	"github.com/conecta-social/conecta-backend-go/internal/domain/friendship"
	"github.com/conecta-social/conecta-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// FriendshipHandler defines the friendship handler interface
type FriendshipHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	StatusWith(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
}

type friendshipHandlerImpl struct {
	friendshipService friendship.Service
}

// NewFriendshipHandler creates a new friendship handler
func NewFriendshipHandler(friendshipService friendship.Service) FriendshipHandler {
	return &friendshipHandlerImpl{friendshipService: friendshipService}
}

// Send creates a friend request
func (h *friendshipHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req friendship.CreateFriendshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.friendshipService.SendRequest(r.Context(), userID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Friend request sent", nil)
}

// Accept accepts a pending friend request addressed to the caller
func (h *friendshipHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	friendshipID := chi.URLParam(r, "friendshipID")
	if err := h.friendshipService.AcceptRequest(r.Context(), userID, friendshipID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Friend request accepted", nil)
}

// Reject rejects a pending friend request addressed to the caller
func (h *friendshipHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	friendshipID := chi.URLParam(r, "friendshipID")
	if err := h.friendshipService.RejectRequest(r.Context(), userID, friendshipID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Friend request rejected", nil)
}

// StatusWith reports the friendship status between the caller and another user
func (h *friendshipHandlerImpl) StatusWith(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	otherUserID := chi.URLParam(r, "userID")
	status, err := h.friendshipService.GetStatusWith(r.Context(), userID, otherUserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Pending lists friend requests awaiting the caller's response
func (h *friendshipHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.friendshipService.ListPending(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// PendingCount returns how many requests await the caller's response
func (h *friendshipHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	count, err := h.friendshipService.CountPending(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, count)
}
