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

	"clubhub/internal/bootstrap"
	"clubhub/internal/config"
	"clubhub/internal/observability/logging"
	"clubhub/internal/observability/metrics"
	impl "clubhub/internal/service/impl"
	httpx "clubhub/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "clubhub",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	metrics.MustRegister("clubhub")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1) Store
	st, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	// 2) Posters
	ps, uploads, err := bootstrap.OpenPosters(ctx, cfg)
	if err != nil {
		logger.Error("open poster store", "backend", cfg.PosterBackend, "error", err)
		os.Exit(1)
	}

	// 3) Services
	pw := impl.NewPasswordServiceArgon2id()
	ts, err := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.TokenIssuer,
		TTL:        cfg.TokenTTL,
		SigningKey: []byte(cfg.JWTSecret),
	})
	if err != nil {
		logger.Error("token service", "error", err)
		os.Exit(1)
	}
	as := impl.NewAuthServiceImpl(st.Users(), pw, ts)
	es := impl.NewEventServiceImpl(st.Users(), st.Events(), ps)

	// 4) HTTP
	router := httpx.NewRouter(as, es, httpx.RouterConfig{
		CORSOrigins:    cfg.CORSOrigins,
		AuthRateLimit:  cfg.AuthRateLimit,
		MaxUploadBytes: cfg.MaxUploadBytes,
		PublicBaseURL:  cfg.PublicBaseURL,
		Uploads:        uploads,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("clubhub listening", "addr", srv.Addr, "store", cfg.StoreDriver, "posters", cfg.PosterBackend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}
}
