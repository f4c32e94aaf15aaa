// Package main runs the academy gateway: the HTTP server the browser app
// talks to. It maps backend records into view models, owns the viewer
// session, and shields pages from partial upstream failures.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/learnova/gateway/config"
	"github.com/learnova/gateway/internal/access"
	"github.com/learnova/gateway/internal/assets"
	"github.com/learnova/gateway/internal/auth"
	"github.com/learnova/gateway/internal/courses"
	"github.com/learnova/gateway/internal/events"
	"github.com/learnova/gateway/internal/inquiries"
	"github.com/learnova/gateway/internal/mapper"
	"github.com/learnova/gateway/internal/middleware"
	"github.com/learnova/gateway/internal/notifications"
	"github.com/learnova/gateway/internal/programs"
	"github.com/learnova/gateway/internal/queries"
	"github.com/learnova/gateway/internal/session"
	"github.com/learnova/gateway/internal/upstream"
	"github.com/learnova/gateway/pkg/database"
	"github.com/learnova/gateway/pkg/redis"
	"github.com/learnova/gateway/pkg/response"
	"github.com/learnova/gateway/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// Postgres is optional. Without it the support-thread store falls back
	// to the seeded in-memory dataset and inquiries are not archived.
	var pool *pgxpool.Pool
	if cfg.Database.URL != "" {
		pool, err = database.NewPostgresPool(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	} else {
		logger.Info("DATABASE_URL not set, using in-memory query store")
	}

	var s3Client *storage.S3
	if cfg.Storage.AssetsBucket != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.Storage.Region,
			AccessKeyID:          cfg.Storage.AccessKeyID,
			SecretAccessKey:      cfg.Storage.SecretAccessKey,
			AssetsBucket:         cfg.Storage.AssetsBucket,
			PresignExpireMinutes: cfg.Storage.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
			s3Client = nil
		}
	}

	client := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSec)*time.Second, logger)

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	tokens := session.NewTokenService(cfg.Session.Secret, sessionTTL)
	verifier := session.NewGoogleVerifier(cfg.Google.ClientID)
	sessionStore := session.NewStore(session.NewRedisStorage(rdb.Client), client, verifier, tokens, sessionTTL, logger)

	// When the backend rejects a stored token the owning session is cleared
	// immediately, instead of every later request failing the same way.
	client.OnAuthExpired(sessionStore.InvalidateToken)

	views := mapper.New(mapper.NewImageResolver(cfg.Storage.CDNBaseURL))
	resolver := access.NewResolver(client, logger)

	var queryStore queries.Store
	if pool != nil {
		queryStore = queries.NewPostgresStore(pool)
	} else {
		queryStore = queries.NewSeededStore()
	}
	queryStats := queries.NewStatsSelector(queryStore)

	authHandler := auth.NewHandler(sessionStore, logger)
	courseHandler := courses.NewHandler(client, views, resolver, logger)
	eventHandler := events.NewHandler(client, views, logger)
	programHandler := programs.NewHandler(client, views, logger)
	notificationHandler := notifications.NewHandler(client, notifications.NewCache(), logger)
	queryHandler := queries.NewHandler(queryStore, queryStats, logger)
	inquiryHandler := inquiries.NewHandler(client, pool, logger)

	var signer assets.Signer
	if s3Client != nil {
		signer = s3Client
	}
	assetHandler := assets.NewHandler(signer, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Session(sessionStore))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/google", authHandler.GoogleLogin)
		authGroup.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
		authGroup.GET("/me", authHandler.Me)
	}

	// Catalog pages (public; enrollment state is folded in per session)
	router.GET("/courses", courseHandler.List)
	router.GET("/courses/:slug", courseHandler.GetBySlug)
	router.GET("/enrollments/:courseId/access", courseHandler.Access)
	router.GET("/events", eventHandler.List)
	router.GET("/events/:slug", eventHandler.GetBySlug)
	router.GET("/programs", programHandler.List)
	router.GET("/programs/:slug", programHandler.GetBySlug)

	// Contact form (public)
	router.POST("/inquiries", inquiryHandler.Submit)

	// Viewer-scoped API
	me := router.Group("")
	me.Use(middleware.RequireAuth())
	{
		me.GET("/notifications", notificationHandler.List)

		me.GET("/queries", queryHandler.List)
		me.GET("/queries/stats", queryHandler.Stats)
		me.GET("/queries/:id", queryHandler.Get)
		me.POST("/queries", queryHandler.Create)
		me.POST("/queries/:id/messages", queryHandler.Reply)
		me.PATCH("/queries/:id/resolve", queryHandler.Resolve)

		me.POST("/me/popup/dismiss", authHandler.DismissPopup)
		me.GET("/me/popup", authHandler.Popup)

		me.GET("/assets/sign", assetHandler.Sign)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("gateway listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
