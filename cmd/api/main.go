package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"frontline/internal/config"
	"frontline/internal/database"
	"frontline/internal/middleware"
	"frontline/internal/modules/form"
	"frontline/internal/modules/health"
	"frontline/internal/pkg/logger"
	"frontline/internal/pkg/qrcode"
	"frontline/internal/repository"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn := database.New(cfg.DatabaseName, lg)
	if err := conn.Connect(ctx, cfg.DatabaseURI); err != nil {
		lg.Fatal("database connect failed", "error", err)
	}

	store, err := repository.NewFormStore(conn)
	if err != nil {
		lg.Fatal("form store init failed", "error", err)
	}
	if cfg.FrontendURL == "" {
		lg.Warn("FRONTEND_URL is empty, QR codes will hold relative links")
	}

	formService := form.NewService(store, qrcode.New(cfg.QRScale), cfg.FrontendURL)
	formHandler := form.NewHandler(formService)
	healthHandler := health.NewHandler(conn, string(conn.Backend()))

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(lg),
		middleware.CORS(cfg.AllowedOrigins),
	)

	healthHandler.RegisterRoutes(r)
	v1 := r.Group("/api/v1")
	{
		formHandler.RegisterRoutes(v1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("server listening", "addr", srv.Addr, "backend", conn.Backend())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown failed", "error", err)
	}
	if err := conn.Close(shutdownCtx); err != nil {
		lg.Error("database close failed", "error", err)
	}
}
