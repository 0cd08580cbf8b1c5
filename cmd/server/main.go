package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/videominer/videominer-go/internal/config"
	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/handler"
	"github.com/videominer/videominer-go/internal/middleware"
	"github.com/videominer/videominer-go/internal/repository"
	"github.com/videominer/videominer-go/internal/service"
	"github.com/videominer/videominer-go/pkg/logger"
)

const basePath = "/videominer/v1"

func main() {
	// A missing .env file is fine; config falls back to defaults and env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close(pool)

	logger.Log.Info("database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
	)

	channelRepo := repository.NewChannelRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	captionRepo := repository.NewCaptionRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)

	var publisher *service.MessagePublisher
	if cfg.Events.Enabled {
		publisher, err = service.NewMessagePublisher(&cfg.Events)
		if err != nil {
			logger.Log.Warn("event publisher unavailable, continuing without it", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// The interface value must stay nil when no publisher is configured.
	var events service.EventPublisher
	if publisher != nil {
		events = publisher
	}

	authorizer := service.NewAuthorizer(tokenRepo)
	cascade := service.NewCascade(channelRepo, videoRepo, commentRepo, captionRepo, userRepo)

	channelService := service.NewChannelService(channelRepo, videoRepo, cascade, events)
	videoService := service.NewVideoService(videoRepo, commentRepo, captionRepo, userRepo, cascade, events)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo, cascade, events)
	captionService := service.NewCaptionService(captionRepo, videoRepo, cascade, events)
	userService := service.NewUserService(userRepo, videoRepo, commentRepo, cascade, events)
	tokenService := service.NewTokenService(tokenRepo)

	router := setupRouter(cfg, pool, publisher, authorizer,
		handler.NewChannelHandler(channelService),
		handler.NewVideoHandler(videoService),
		handler.NewCommentHandler(commentService),
		handler.NewCaptionHandler(captionService),
		handler.NewUserHandler(userService),
		handler.NewTokenHandler(tokenService),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			_ = server.Close()
		}

		logger.Log.Info("server stopped")
	}
}

func setupRouter(
	cfg *config.Config,
	pool *pgxpool.Pool,
	publisher *service.MessagePublisher,
	authorizer *service.Authorizer,
	channels *handler.ChannelHandler,
	videos *handler.VideoHandler,
	comments *handler.CommentHandler,
	captions *handler.CaptionHandler,
	users *handler.UserHandler,
	tokens *handler.TokenHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group(basePath)

	// Token registration is the only ungated catalogue route.
	api.POST("/token", tokens.Create)

	gated := api.Group("")
	gated.Use(middleware.RequireToken(authorizer))

	gated.GET("/channels", channels.List)
	gated.POST("/channels", channels.Create)
	gated.GET("/channels/:channelId", channels.Get)
	gated.PUT("/channels/:channelId", channels.Update)
	gated.DELETE("/channels/:channelId", channels.Delete)
	gated.POST("/channels/:channelId/videos", videos.Create)

	gated.GET("/videos", videos.List)
	gated.GET("/videos/:videoId", videos.Get)
	gated.PUT("/videos/:videoId", videos.Update)
	gated.DELETE("/videos/:videoId", videos.Delete)
	gated.GET("/videos/:videoId/comments", comments.ListByVideo)
	gated.POST("/videos/:videoId/comments", comments.Create)
	gated.GET("/videos/:videoId/captions", captions.ListByVideo)
	gated.POST("/videos/:videoId/captions", captions.Create)
	gated.GET("/videos/:videoId/users", users.ListByVideo)

	gated.GET("/comments", comments.List)
	gated.GET("/comments/:commentId", comments.Get)
	gated.PUT("/comments/:commentId", comments.Update)
	gated.DELETE("/comments/:commentId", comments.Delete)

	gated.GET("/captions", captions.List)
	gated.GET("/captions/:captionId", captions.Get)
	gated.PUT("/captions/:captionId", captions.Update)
	gated.DELETE("/captions/:captionId", captions.Delete)

	gated.GET("/users", users.List)
	gated.GET("/users/:userId", users.Get)
	gated.PUT("/users/:userId", users.Update)
	gated.DELETE("/users/:userId", users.Delete)

	health := handler.NewHealthHandler(pool, publisher)
	router.GET("/health/live", health.LivenessProbe)
	router.GET("/health/ready", health.ReadinessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
