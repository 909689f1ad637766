package http

import (
	"encoding/json"
	"net/http"

	"github.com/conecta-social/conecta-backend-go/internal/domain/story"
	"github.com/conecta-social/conecta-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// StoryHandler defines the story handler interface
type StoryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	View(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type storyHandlerImpl struct {
	storyService story.Service
}

// NewStoryHandler creates a new story handler
func NewStoryHandler(storyService story.Service) StoryHandler {
	return &storyHandlerImpl{storyService: storyService}
}

// Create publishes a new story
func (h *storyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req story.CreateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.storyService.CreateStory(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Story created", created)
}

// ListActive returns all unexpired stories
func (h *storyHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	stories, err := h.storyService.ListActiveStories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stories)
}

// View records that the caller viewed a story
func (h *storyHandlerImpl) View(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	storyID := chi.URLParam(r, "storyID")
	if err := h.storyService.ViewStory(r.Context(), userID, storyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Story viewed", nil)
}

// Delete removes the caller's own story
func (h *storyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	storyID := chi.URLParam(r, "storyID")
	if err := h.storyService.DeleteStory(r.Context(), userID, storyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Story deleted", nil)
}
