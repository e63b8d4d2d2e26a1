package main

import (
	"context"
	"log/slog"
	"os"

	"clubhub/internal/bootstrap"
	"clubhub/internal/config"
	"clubhub/internal/observability/logging"
	"clubhub/internal/seed"
	impl "clubhub/internal/service/impl"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(logging.Config{
		ServiceName: "seedclubs",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	ctx := context.Background()
	st, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() { _ = st.Close(ctx) }()

	ts, err := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.TokenIssuer,
		TTL:        cfg.TokenTTL,
		SigningKey: []byte(cfg.JWTSecret),
	})
	if err != nil {
		logger.Error("token service", "error", err)
		os.Exit(1)
	}
	auth := impl.NewAuthServiceImpl(st.Users(), impl.NewPasswordServiceArgon2id(), ts)

	added, err := seed.Run(ctx, auth, seed.Clubs, os.Stdout)
	if err != nil {
		logger.Error("seed clubs", "added", added, "error", err)
		_ = st.Close(ctx)
		os.Exit(1)
	}
	logger.Info("seed complete", "added", added, "total", len(seed.Clubs))
}
