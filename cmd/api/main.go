package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/taskdeck/taskdeck-go/internal/config"
	"github.com/taskdeck/taskdeck-go/internal/crypto"
	"github.com/taskdeck/taskdeck-go/internal/handler"
	"github.com/taskdeck/taskdeck-go/internal/middleware"
	"github.com/taskdeck/taskdeck-go/internal/repository"
	"github.com/taskdeck/taskdeck-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.LogLevel, cfg.LogFormat))

	var (
		userRepo service.UserRepository
		taskRepo service.TaskRepository
	)

	switch cfg.Storage {
	case config.StorageMemory:
		slog.Warn("using in-memory storage, data is lost on restart")
		userRepo = repository.NewMemoryUserRepository()
		taskRepo = repository.NewMemoryTaskRepository()
	default:
		db, err := repository.NewDB(cfg.DatabaseDSN)
		if err != nil {
			slog.Error("database setup failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		userRepo = repository.NewUserRepository(db)
		taskRepo = repository.NewTaskRepository(db)
	}

	tokens := crypto.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepo, crypto.NewHasher(cfg.BcryptCost))
	authService := service.NewAuthService(userService, tokens)
	taskService := service.NewTaskService(taskRepo)

	router := handler.NewRouter(handler.RouterConfig{
		Auth:         handler.NewAuthHandler(authService),
		Tasks:        handler.NewTaskHandler(taskService),
		Authenticate: middleware.JWTAuth(tokens, userService),
		CORSOrigins:  cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		return
	}

	slog.Info("server stopped")
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
