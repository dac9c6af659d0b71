package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/authclient"
	"github.com/mercass/storefront/internal/config"
	"github.com/mercass/storefront/internal/database"
	"github.com/mercass/storefront/internal/handler"
	"github.com/mercass/storefront/internal/payment"
	"github.com/mercass/storefront/internal/queue"
	"github.com/mercass/storefront/internal/render"
	"github.com/mercass/storefront/internal/router"
	"github.com/mercass/storefront/internal/store"
	"github.com/mercass/storefront/internal/upload"
	"github.com/mercass/storefront/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	renderer := render.NewRenderer(cfg.ViewsDir, cfg.ViewExt)

	auth := authclient.New(cfg.AuthServerURL)
	uploads := upload.NewStore(cfg.UploadDir, cfg.CDNBaseURL)
	payments := payment.New(cfg.PaymentBaseURL, cfg.PaymentAPIKey, cfg.PaymentSecretKey)
	q := store.New(db)
	h := handler.New(q, auth, uploads, payments, &cfg)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	router.Register(e, router.Deps{
		Handler:   h,
		Store:     q,
		Auth:      auth,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	})

	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			slog.Error("event consumer stopped", "error", err)
		}
	}()

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
