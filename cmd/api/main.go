package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "RealEgo_Backend/docs"
	"RealEgo_Backend/internal/auth"
	"RealEgo_Backend/internal/config"
	"RealEgo_Backend/internal/handler"
	"RealEgo_Backend/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	shutdownTimeout = 10 * time.Second
	drainTimeout    = 15 * time.Second
)

// @title           RealEgo API
// @version         1.0
// @description     개인 비서 백엔드: 계정, 프로필, 채팅, 기억, 업로드
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer " 뒤에 토큰을 입력하세요.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := seedDefaultAccount(ctx, db, cfg.DefaultUsername, cfg.DefaultPassword, logger); err != nil {
		return err
	}

	deps, cleanup, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	deps.Store = db
	deps.Tokens = auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiry)

	h := handler.New(deps)
	router := handler.NewRouter(h, handler.RouterConfig{
		FrontendDir:        cfg.FrontendDir,
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		Logger:             logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	// 응답 이후 작업(메시지 저장, 기억 등록) 마무리 대기
	drainCtx, cancelDrain := context.WithTimeout(context.Background(), drainTimeout)
	defer cancelDrain()
	if err := h.Background().Wait(drainCtx); err != nil {
		logger.Warn("background tasks abandoned", "error", err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
