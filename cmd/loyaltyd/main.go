package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"loyalty/internal/config"
	"loyalty/internal/observability/logging"
	"loyalty/internal/observability/metrics"
	impl "loyalty/internal/service/impl"
	"loyalty/internal/store"
	httpx "loyalty/internal/transport/http"
	"loyalty/pkg/db"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "loyalty",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	metrics.MustRegister("loyalty")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogLevel == "debug"})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	pw := impl.NewPasswordServiceArgon2id()
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		SigningKey: []byte(cfg.SigningKey),
	}, st)
	links := impl.NewUniqueLinkService(st)
	partner := impl.NewPartnerService(st, pw)
	auth := impl.NewAuthServiceImpl(st, pw, ts)

	h := httpx.NewHandler(links, partner, auth, ts, httpx.Options{
		FrontendBaseURL: cfg.FrontendBaseURL,
		AccessTTL:       cfg.AccessTTL,
		RefreshTTL:      cfg.RefreshTTL,
		Production:      cfg.Production(),
	})

	router := httpx.NewRouter(h, httpx.RouterConfig{
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitRPM: cfg.RateLimitRPM,
		TrustProxy:   cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("loyalty service listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
