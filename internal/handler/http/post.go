package http

import (
	"encoding/json"
	"net/http"

	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// PostHandler defines the post handler interface
type PostHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Feed(w http.ResponseWriter, r *http.Request)
	UserPosts(w http.ResponseWriter, r *http.Request)
	UserTestimonials(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	React(w http.ResponseWriter, r *http.Request)
	Reactions(w http.ResponseWriter, r *http.Request)

	CreateComment(w http.ResponseWriter, r *http.Request)
	Comments(w http.ResponseWriter, r *http.Request)

	Share(w http.ResponseWriter, r *http.Request)
}

type postHandlerImpl struct {
	postService post.Service
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService post.Service) PostHandler {
	return &postHandlerImpl{postService: postService}
}

// Create publishes a new post
func (h *postHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req post.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.postService.CreatePost(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Post created", created)
}

// Feed returns the newest posts
func (h *postHandlerImpl) Feed(w http.ResponseWriter, r *http.Request) {
	limit := getIntQueryParam(r, "limit", 0)

	posts, err := h.postService.GetFeed(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, posts)
}

// UserPosts returns a user's posts
func (h *postHandlerImpl) UserPosts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := getIntQueryParam(r, "limit", 20)

	posts, err := h.postService.GetUserPosts(r.Context(), userID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, posts)
}

// UserTestimonials returns a user's testimonials
func (h *postHandlerImpl) UserTestimonials(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := getIntQueryParam(r, "limit", 20)

	posts, err := h.postService.GetUserTestimonials(r.Context(), userID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, posts)
}

// Delete removes the caller's own post and everything attached to it
func (h *postHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	postID := chi.URLParam(r, "postID")
	if err := h.postService.DeletePost(r.Context(), userID, postID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Post deleted", nil)
}

// React toggles or replaces the caller's reaction on a post
func (h *postHandlerImpl) React(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req post.CreateReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PostID = chi.URLParam(r, "postID")

	outcome, err := h.postService.React(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"outcome": string(outcome)})
}

// Reactions returns the reaction summary for a post
func (h *postHandlerImpl) Reactions(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	postID := chi.URLParam(r, "postID")

	summary, err := h.postService.GetPostReactions(r.Context(), userID, postID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// CreateComment adds a comment to a post
func (h *postHandlerImpl) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req post.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.PostID = chi.URLParam(r, "postID")

	comment, err := h.postService.CreateComment(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment created", comment)
}

// Comments returns a post's comments, threaded one level deep
func (h *postHandlerImpl) Comments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	comments, err := h.postService.GetPostComments(r.Context(), postID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, comments)
}

// Share records that the caller shared a post
func (h *postHandlerImpl) Share(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req := post.CreateShareRequest{PostID: chi.URLParam(r, "postID")}
	if err := h.postService.SharePost(r.Context(), userID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Post shared", nil)
}
