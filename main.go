package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storeapi/internal/config"
	"storeapi/internal/database"
	"storeapi/internal/handlers"
	"storeapi/internal/logging"
	"storeapi/internal/metrics"
	"storeapi/internal/middleware"
	"storeapi/internal/repositories"
	"storeapi/internal/services"
	"storeapi/internal/validation"
	"storeapi/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// auditQueue receives a copy of every event when EVENTS_AUDIT is on.
const auditQueue = "store.events.audit"

// Dependencies are the long-lived resources the Store API is built from.
type Dependencies struct {
	Log     *logrus.Logger
	DB      *gorm.DB
	Events  services.EventPublisher // nil disables event publishing
	Metrics *metrics.Metrics        // nil disables /metrics
}

// NewApp wires the Store API routes and middleware on deps.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "storeapi",
		ErrorHandler: middleware.ErrorHandler(deps.Log),
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(deps.Log))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get(metrics.Path, deps.Metrics.FiberHandler())
	}
	app.Use(recover.New())

	newUnitOfWork := repositories.NewGORMUnitOfWorkFactory(deps.DB)
	validator := validation.New()

	companyHandler := handlers.NewCompanyHandler(services.NewCompanyService(newUnitOfWork, validator, deps.Events))
	storeHandler := handlers.NewStoreHandler(services.NewStoreService(newUnitOfWork, validator, deps.Events))

	apiV1 := app.Group("/api/v1")
	companyHandler.RegisterRoutes(apiV1)
	storeHandler.RegisterRoutes(apiV1)

	app.Get("/health", healthHandler(deps))
	return app
}

func healthHandler(deps Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events := "disabled"
		if deps.Events != nil {
			events = "enabled"
		}

		status, dbState := fiber.StatusOK, "up"
		if err := ping(c.UserContext(), deps.DB); err != nil {
			logging.FromContext(c.UserContext()).WithError(err).Warn("Database ping failed")
			status, dbState = fiber.StatusServiceUnavailable, "down"
		}

		health := "healthy"
		if status != fiber.StatusOK {
			health = "unhealthy"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbState,
			"events":   events,
		})
	}
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Open(ctx, database.OptionsFromConfig(cfg), log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("Failed to migrate database")
		}
	}

	// Left as a nil interface when disabled so services skip publishing.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange}, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		events = mqClient

		if cfg.EventsAudit {
			if err := mqClient.ConsumeEvents(auditQueue, "#", rabbitmq.AuditHandler(log)); err != nil {
				log.WithError(err).Error("Failed to start event audit consumer")
			}
		}
	} else {
		log.Info("RABBITMQ_URL not set, entity events are not published")
	}

	app := NewApp(Dependencies{
		Log:     log,
		DB:      db,
		Events:  events,
		Metrics: metrics.New(),
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.AppPort).Info("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server gracefully stopped")
}
