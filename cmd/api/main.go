package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pborkovic/bunkermuseum-members/internal/auth"
	"github.com/pborkovic/bunkermuseum-members/internal/avatar"
	"github.com/pborkovic/bunkermuseum-members/internal/booking"
	"github.com/pborkovic/bunkermuseum-members/internal/config"
	"github.com/pborkovic/bunkermuseum-members/internal/logger"
	"github.com/pborkovic/bunkermuseum-members/internal/maillog"
	"github.com/pborkovic/bunkermuseum-members/internal/member"
	"github.com/pborkovic/bunkermuseum-members/internal/server"
	"github.com/pborkovic/bunkermuseum-members/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init()
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := storage.RunMigrations(cfg.Postgres); err != nil {
		logg.Fatal("run migrations", zap.Error(err))
	}

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		logg.Fatal("connect minio", zap.Error(err))
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		logg.Fatal("ensure bucket", zap.Error(err))
	}

	authRepo := auth.NewRepository(dbPool)
	authService := auth.NewService(authRepo, cfg.Auth)

	avatarRepo := avatar.NewRepository(dbPool)
	avatarStore := avatar.NewMinIOStore(minioClient)
	avatarPolicy := avatar.Policy{
		MaxBytes:     cfg.Upload.MaxBytes,
		AllowedTypes: cfg.Upload.AllowedTypes,
	}
	avatarService := avatar.NewService(avatarRepo, avatarStore, cfg.MinIO.Bucket, avatarPolicy)
	avatarResolver := avatar.NewURLResolver(cfg.Upload.PublicBasePath)

	memberRepo := member.NewRepository(dbPool)
	memberService := member.NewService(memberRepo, avatarResolver)

	bookingRepo := booking.NewRepository(dbPool)
	bookingService := booking.NewService(bookingRepo)

	maillogRepo := maillog.NewRepository(dbPool)
	maillogService := maillog.NewService(maillogRepo)

	router := server.NewRouter(server.Dependencies{
		Config:          cfg,
		Logger:          logg,
		DB:              dbPool,
		ObjectStore:     minioClient,
		AuthService:     authService,
		MemberService:   memberService,
		BookingService:  bookingService,
		AvatarService:   avatarService,
		AvatarResolver:  avatarResolver,
		EmailLogService: maillogService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("membership API listening", zap.String("address", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", zap.Error(err))
	}
}
