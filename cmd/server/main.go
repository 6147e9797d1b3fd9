package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"notekeeper/internal/config"
	apphttp "notekeeper/internal/http"
	"notekeeper/internal/repository"
	"notekeeper/internal/repository/postgres"
	"notekeeper/internal/repository/sqlite"
	"notekeeper/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := configureLogger(logger, cfg); err != nil {
		logger.Fatalf("configure logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		logger.Fatalf("init store: %v", err)
	}
	logger.Infof("using %s store", cfg.Database.Driver)

	userService := service.NewUserService(store, cfg.Auth.BcryptCost)
	noteService := service.NewNoteService(store)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		noteService,
		store,
		logger,
		cfg.Auth.Realm,
		cfg.CORS.AllowOrigin,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(db), nil
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewStore(pool, cfg.Database.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
