package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/dtroode/opentask-server/internal/api/http/context"
	"github.com/dtroode/opentask-server/internal/api/http/handler"
	"github.com/dtroode/opentask-server/internal/api/http/router"
	httpServer "github.com/dtroode/opentask-server/internal/api/http/server"
	"github.com/dtroode/opentask-server/internal/config"
	"github.com/dtroode/opentask-server/internal/logger"
	"github.com/dtroode/opentask-server/internal/model"
	"github.com/dtroode/opentask-server/internal/password"
	"github.com/dtroode/opentask-server/internal/repository/postgres"
	"github.com/dtroode/opentask-server/internal/server"
	"github.com/dtroode/opentask-server/internal/service"
	localstorage "github.com/dtroode/opentask-server/internal/storage/local"
	miniostorage "github.com/dtroode/opentask-server/internal/storage/minio"
	"github.com/dtroode/opentask-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	hasher := password.NewHasher(0)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	fileStorage, err := newFileStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize file storage", "error", err)
	}

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger, cfg.Database.QueryTimeout)
	taskService := service.NewTask(taskRepo, fileStorage, logger, cfg.Database.QueryTimeout)
	fileService := service.NewFile(fileStorage, logger)

	ctxMgr := httpctx.NewManager()

	authHandler := handler.NewAuth(authService, ctxMgr, logger)
	taskHandler := handler.NewTask(taskService, logger)
	fileHandler := handler.NewFile(fileService, logger)

	engine := router.New(authHandler, taskHandler, fileHandler, authService, ctxMgr, logger).Register()
	srv := httpServer.NewHTTPServer(engine, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newFileStorage(ctx context.Context, cfg *config.Config) (model.FileStorage, error) {
	switch cfg.Storage.Backend {
	case "minio":
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return miniostorage.NewClient(ctx, minioClient, cfg.Minio.Bucket)
	case "local":
		return localstorage.NewClient(cfg.Storage.UploadDir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
