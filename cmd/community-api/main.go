package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/community-hub-api/api/swagger"
	"github.com/noah-isme/community-hub-api/internal/handler"
	internalmiddleware "github.com/noah-isme/community-hub-api/internal/middleware"
	"github.com/noah-isme/community-hub-api/internal/repository"
	"github.com/noah-isme/community-hub-api/internal/service"
	"github.com/noah-isme/community-hub-api/pkg/cache"
	"github.com/noah-isme/community-hub-api/pkg/config"
	"github.com/noah-isme/community-hub-api/pkg/database"
	"github.com/noah-isme/community-hub-api/pkg/jobs"
	"github.com/noah-isme/community-hub-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/community-hub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/community-hub-api/pkg/middleware/requestid"
	"github.com/noah-isme/community-hub-api/pkg/storage"
)

// @title Community Hub API
// @version 1.0.0
// @description Member directory, feed discovery, mention autocomplete and exports.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		// Listings still work without Redis; every lookup becomes a miss.
		logr.Warn("redis unavailable, directory cache disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	app, err := buildApp(cfg, logr, db, redisClient)
	if err != nil {
		logr.Fatal("failed to build application", zap.Error(err))
	}

	app.queue.Start(ctx)
	app.exports.RecoverPendingJobs(ctx)
	app.exports.StartCleanup(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
	app.queue.Stop()
}

type application struct {
	router  *gin.Engine
	queue   *jobs.Queue[string]
	exports *service.ExportService
}

func buildApp(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client) (*application, error) {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := service.NewValidator()
	metrics := service.NewMetricsService()

	memberRepo := repository.NewMemberRepository(db)
	postRepo := repository.NewPostRepository(db)
	exportRepo := repository.NewExportJobRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Directory.CacheTTL, logr, cfg.Directory.CacheEnabled && redisClient != nil)
	directory := service.NewDirectoryService(memberRepo, postRepo, cacheSvc, metrics, logr, service.DirectoryConfig{
		CacheTTL:        cfg.Directory.CacheTTL,
		DefaultPageSize: cfg.Directory.DefaultPageSize,
		MaxPageSize:     cfg.Directory.MaxPageSize,
	})
	members := service.NewMemberService(memberRepo, directory, validate, logr)
	posts := service.NewPostService(postRepo, memberRepo, directory, validate, logr)
	mentions := service.NewMentionService(directory, validate, cfg.Directory.SuggestLimit)

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("init export storage: %w", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	builder := service.NewExportBuilder(directory, store, signer, cfg.APIPrefix)
	worker := service.NewExportWorker(exportRepo, builder, metrics, logr)

	queue := jobs.NewQueue[string]("exports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	queue.OnExhausted(worker.Fail)

	exports := service.NewExportService(exportRepo, queue, builder, store, signer, validate, logr, service.ExportServiceConfig{
		Enabled:         cfg.Exports.Enabled,
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics, "/metrics"))
	r.Use(internalmiddleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metrics, readinessChecks(db, redisClient, cacheRepo))
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	directoryHandler := handler.NewDirectoryHandler(directory)
	memberHandler := handler.NewMemberHandler(members, posts)
	mentionHandler := handler.NewMentionHandler(mentions)
	exportHandler := handler.NewExportHandler(exports)

	api := r.Group(cfg.APIPrefix)
	api.GET("/members", directoryHandler.ListMembers)
	api.POST("/members", memberHandler.CreateMember)
	api.GET("/members/skills", directoryHandler.Skills)
	api.GET("/feed", directoryHandler.Feed)
	api.POST("/posts", memberHandler.CreatePost)

	api.GET("/mentions/suggest", mentionHandler.Suggest)
	api.POST("/mentions/lookup", mentionHandler.Lookup)
	api.POST("/mentions/apply", mentionHandler.Apply)

	api.POST("/exports", exportHandler.Create)
	api.GET("/exports/download/:token", exportHandler.Download)
	api.GET("/exports/:id", exportHandler.Status)

	return &application{router: r, queue: queue, exports: exports}, nil
}

// readinessChecks wires dependency probes for /ready. Redis is optional: when
// it was unreachable at boot the directory runs uncached and the check is
// reported as disabled instead of pinging a nil client.
func readinessChecks(db *sqlx.DB, redisClient *redis.Client, cacheRepo *repository.CacheRepository) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
		"redis":    nil,
	}
	if redisClient != nil {
		checks["redis"] = cacheRepo.Ping
	}
	return checks
}
