package response

import (
	"errors"
	"net/http"

	"github.com/conecta-social/conecta-backend-go/internal/domain/auth"
	"github.com/conecta-social/conecta-backend-go/internal/domain/friendship"
	"github.com/conecta-social/conecta-backend-go/internal/domain/notification"
	"github.com/conecta-social/conecta-backend-go/internal/domain/post"
	"github.com/conecta-social/conecta-backend-go/internal/domain/story"
	"github.com/conecta-social/conecta-backend-go/internal/domain/user"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInactiveUser):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrChannelIdentityMismatch):
		Forbidden(w, "Token does not match the requested channel")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrWrongPassword):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrInvalidPrivacy):
		BadRequest(w, "Invalid privacy level", nil)

	// Post domain errors
	case errors.Is(err, post.ErrPostNotFound):
		NotFound(w, "Post not found")
	case errors.Is(err, post.ErrCommentNotFound):
		NotFound(w, "Comment not found")
	case errors.Is(err, post.ErrNotPostAuthor):
		Forbidden(w, "Only the author can do that")
	case errors.Is(err, post.ErrAlreadyShared):
		Conflict(w, "Post already shared")
	case errors.Is(err, post.ErrInvalidReactionType):
		BadRequest(w, "Invalid reaction type", nil)

	// Story domain errors
	case errors.Is(err, story.ErrStoryNotFound):
		NotFound(w, "Story not found")
	case errors.Is(err, story.ErrStoryExpired):
		NotFound(w, "Story has expired")
	case errors.Is(err, story.ErrNotStoryAuthor):
		Forbidden(w, "Only the author can do that")

	// Friendship domain errors
	case errors.Is(err, friendship.ErrFriendshipNotFound):
		NotFound(w, "Friend request not found")
	case errors.Is(err, friendship.ErrSelfFriendship):
		BadRequest(w, "Cannot send a friend request to yourself", nil)
	case errors.Is(err, friendship.ErrAlreadyRequested):
		Conflict(w, "Friend request already sent")
	case errors.Is(err, friendship.ErrAlreadyFriends):
		Conflict(w, "Already friends")
	case errors.Is(err, friendship.ErrNotAddressee):
		Forbidden(w, "Only the addressee can respond to this request")
	case errors.Is(err, friendship.ErrNotPending):
		Conflict(w, "Friend request already processed")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidType):
		BadRequest(w, "Invalid notification type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
