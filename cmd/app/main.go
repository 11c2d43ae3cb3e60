package main

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/wichananm65/user-dashboard/internal/analytics"
	"github.com/wichananm65/user-dashboard/internal/config"
	"github.com/wichananm65/user-dashboard/internal/logging"
	"github.com/wichananm65/user-dashboard/internal/server"
	"github.com/wichananm65/user-dashboard/internal/user"
	"github.com/wichananm65/user-dashboard/internal/web"
)

// The dashboard: list view, create/edit form, delete flows and analytics
// over a remote record store.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	loc := cfg.Location()

	sentryOn := server.InitSentry(cfg.SentryDSN, cfg.Environment)

	app := server.New(server.Options{
		Views:       web.NewViews(loc),
		CORSOrigins: cfg.CORSOrigins,
		Sentry:      sentryOn,
		AccessLog:   true,
	})

	client := user.NewClient(cfg.StoreURL, cfg.StoreTimeout)

	analytics.NewHandler(analytics.NewService(client, loc)).RegisterRoutes(app)
	user.NewHandler(user.NewService(client, loc, cfg.PageSize), cfg.DeleteConfirm).RegisterRoutes(app)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "store": client.BaseURL()})
	})

	slog.Info("dashboard configured", "store", client.BaseURL(), "pageSize", cfg.PageSize, "deleteConfirm", cfg.DeleteConfirm, "timezone", loc.String())
	if cfg.StoreTimeout == 0 {
		slog.Warn("store requests have no timeout; set STORE_TIMEOUT to bound them")
	}

	server.Run(app, cfg.Addr)
}
