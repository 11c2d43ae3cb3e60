package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/wichananm65/user-dashboard/internal/config"
	"github.com/wichananm65/user-dashboard/internal/logging"
	"github.com/wichananm65/user-dashboard/internal/server"
	"github.com/wichananm65/user-dashboard/internal/store"
)

// A stand-in for the hosted record store, speaking the same REST shape.
// With DATABASE_URL set records live in Postgres, otherwise in memory.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	sentryOn := server.InitSentry(cfg.SentryDSN, cfg.Environment)

	var (
		repo    store.Repository
		cleanup []func()
	)
	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL)
		pg := store.NewPostgresRepository(db)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			slog.Error("schema setup failed", "error", err)
			os.Exit(1)
		}
		repo = pg
		cleanup = append(cleanup, func() {
			if err := db.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		})
		slog.Info("using postgres repository")
	} else {
		repo = store.NewInMemoryRepository(store.SampleRecords())
		slog.Info("using in-memory repository")
	}

	app := server.New(server.Options{
		CORSOrigins: cfg.CORSOrigins,
		Sentry:      sentryOn,
		AccessLog:   true,
	})

	store.NewHandler(store.NewService(repo)).RegisterRoutes(app.Group("/api/v1"))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	server.Run(app, cfg.StoreAddr, cleanup...)
}

func mustOpenDB(dbURL string) *sql.DB {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}

	if err := db.Ping(); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	return db
}
