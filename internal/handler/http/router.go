package http

import (
	"log/slog"
	"net/http"

	"github.com/conecta-social/conecta-backend-go/internal/handler/http/middleware"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth         AuthHandler
	User         UserHandler
	Post         PostHandler
	Story        StoryHandler
	Friendship   FriendshipHandler
	Notification NotificationHandler
}

func NewRouter(jwtService jwt.Service, frontendURL string, logger *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Get("/check-email", h.Auth.CheckEmail)
		})

		// Channel opens authenticate via query-parameter token, not the
		// bearer middleware: browser websocket clients cannot set headers.
		r.Get("/ws/{userID}", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/auth/verify-token", h.Auth.VerifyToken)

			r.Route("/users", func(r chi.Router) {
				r.Get("/search", h.User.Search)
				r.Get("/{userID}", h.User.GetUser)
				r.Route("/me", func(r chi.Router) {
					r.Put("/", h.User.UpdateProfile)
					r.Delete("/", h.User.DeactivateAccount)
					r.Put("/password", h.User.UpdatePassword)
					r.Get("/privacy", h.User.GetPrivacy)
					r.Put("/privacy", h.User.UpdatePrivacy)
				})
			})

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", h.Post.Create)
				r.Get("/feed", h.Post.Feed)
				r.Get("/user/{userID}", h.Post.UserPosts)
				r.Get("/user/{userID}/testimonials", h.Post.UserTestimonials)

				r.Route("/{postID}", func(r chi.Router) {
					r.Delete("/", h.Post.Delete)
					r.Post("/reactions", h.Post.React)
					r.Get("/reactions", h.Post.Reactions)
					r.Post("/comments", h.Post.CreateComment)
					r.Get("/comments", h.Post.Comments)
					r.Post("/share", h.Post.Share)
				})
			})

			r.Route("/stories", func(r chi.Router) {
				r.Post("/", h.Story.Create)
				r.Get("/", h.Story.ListActive)
				r.Post("/{storyID}/view", h.Story.View)
				r.Delete("/{storyID}", h.Story.Delete)
			})

			r.Route("/friendships", func(r chi.Router) {
				r.Post("/", h.Friendship.Send)
				r.Put("/{friendshipID}/accept", h.Friendship.Accept)
				r.Put("/{friendshipID}/reject", h.Friendship.Reject)
				r.Get("/status/{userID}", h.Friendship.StatusWith)
				r.Get("/pending", h.Friendship.Pending)
				r.Get("/pending/count", h.Friendship.PendingCount)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Put("/read-all", h.Notification.MarkAllAsRead)
				r.Put("/{notificationID}/read", h.Notification.MarkAsRead)
				r.Delete("/{notificationID}", h.Notification.Delete)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
