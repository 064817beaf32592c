package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/canvascartel/crm-backend/config"
	"github.com/canvascartel/crm-backend/internal/db"
	"github.com/canvascartel/crm-backend/internal/mailer"
	"github.com/canvascartel/crm-backend/internal/routes"
	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	if cfg.GinReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	gdb, err := config.OpenDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	if cfg.Seed {
		if err := db.Seed(gdb); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	rdb := config.OpenRedis(cfg.RedisAddr)
	m := mailer.New(cfg.ResendAPIKey, cfg.ResendFrom)
	if !m.Configured() {
		slog.Warn("RESEND_API_KEY not set, invoice email sending disabled")
	}

	router := routes.NewRouter(routes.Deps{DB: gdb, Redis: rdb, Mailer: m})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
}
