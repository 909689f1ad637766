package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/conecta-social/conecta-backend-go/internal/config"
	appHTTP "github.com/conecta-social/conecta-backend-go/internal/handler/http"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/cron"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/database"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/jwt"
	"github.com/conecta-social/conecta-backend-go/internal/pkg/ws"
	"github.com/conecta-social/conecta-backend-go/internal/repository/postgresql"
	authService "github.com/conecta-social/conecta-backend-go/internal/service/auth"
	friendshipService "github.com/conecta-social/conecta-backend-go/internal/service/friendship"
	notificationService "github.com/conecta-social/conecta-backend-go/internal/service/notification"
	postService "github.com/conecta-social/conecta-backend-go/internal/service/post"
	storyService "github.com/conecta-social/conecta-backend-go/internal/service/story"
	userService "github.com/conecta-social/conecta-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "conecta-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	postRepo := postgresql.NewPostRepository(db)
	reactionRepo := postgresql.NewReactionRepository(db)
	commentRepo := postgresql.NewCommentRepository(db)
	shareRepo := postgresql.NewShareRepository(db)
	storyRepo := postgresql.NewStoryRepository(db)
	friendshipRepo := postgresql.NewFriendshipRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := ws.NewHub()

	notifService := notificationService.NewNotificationService(notificationRepo, userRepo, jwtService, hub, logger)
	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo)
	postSvc := postService.NewPostService(db, postRepo, reactionRepo, commentRepo, shareRepo, userRepo, notifService, logger)
	storySvc := storyService.NewStoryService(storyRepo, logger)
	friendshipSvc := friendshipService.NewFriendshipService(friendshipRepo, userRepo, notifService, logger)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("purge-expired-stories", time.Hour, storySvc.PurgeExpired)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, cfg.App.FrontendURL, logger, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Post:         appHTTP.NewPostHandler(postSvc),
		Story:        appHTTP.NewStoryHandler(storySvc),
		Friendship:   appHTTP.NewFriendshipHandler(friendshipSvc),
		Notification: appHTTP.NewNotificationHandler(notifService, hub, logger),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
	hub.Close()
}
