package server

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Options struct {
	// Views renders HTML pages. Without it every error is answered as JSON.
	Views       fiber.Views
	CORSOrigins string
	// Sentry installs the sentry middleware; call InitSentry first.
	Sentry bool
	// AccessLog enables the per-request log line.
	AccessLog bool
}

// New builds a fiber app with the shared middleware stack.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 opts.Views,
		ErrorHandler:          ErrorHandler(opts.Views != nil),
		DisableStartupMessage: true,
	})

	if opts.Sentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}))
	}

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	return app
}

// ErrorHandler maps errors to a status code and hides the detail of 5xx
// errors. With html set, requests outside /api get the error page.
func ErrorHandler(html bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= 500 {
			slog.ErrorContext(c.UserContext(), "unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
			message = "Internal server error"
		}

		if html && !strings.HasPrefix(c.Path(), "/api") {
			c.Status(code)
			if rerr := c.Render("error", fiber.Map{
				"Title":   "Error",
				"Tab":     "",
				"Code":    code,
				"Message": message,
			}, "layout"); rerr == nil {
				return nil
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": message,
		})
	}
}

// InitSentry enables error tracking when dsn is set. It reports whether
// Sentry is active.
func InitSentry(dsn, environment string) bool {
	if dsn == "" {
		return false
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      environment,
	}); err != nil {
		slog.Error("sentry init failed", "error", err)
		return false
	}
	return true
}

// Run serves app on addr until SIGINT or SIGTERM, then shuts it down and
// runs cleanup.
func Run(app *fiber.App, addr string, cleanup ...func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	sentry.Flush(2 * time.Second)
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	for _, fn := range cleanup {
		fn()
	}

	slog.Info("server stopped")
}
