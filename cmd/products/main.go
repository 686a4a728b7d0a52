// Command products serves the product catalogue over HTTP, reading and
// writing the products table through the server-side SQL functions.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storeapi/internal/config"
	"storeapi/internal/database"
	"storeapi/internal/logging"
	"storeapi/internal/metrics"
	"storeapi/internal/middleware"
	"storeapi/internal/products"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// newApp wires the product functions on service.
func newApp(service products.Service, log *logrus.Logger, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "products",
		ErrorHandler: products.ErrorHandler(log),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestContext(log))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
		Output: log.Writer(),
	}))
	if m != nil {
		app.Use(m.Middleware())
		app.Get(metrics.Path, m.FiberHandler())
	}
	app.Use(recover.New())

	products.NewFunctions(service).RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	return app
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := products.Connect(context.Background(), database.OptionsFromConfig(cfg), log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to product database")
	}
	defer db.Close()

	app := newApp(products.NewSQLService(db), log, metrics.New())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.ProductsPort).Info("Starting products server")
		if err := app.Listen(cfg.ProductsPort); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	log.Info("Shutting down products server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	log.Info("Products server gracefully stopped")
}
