package app

import (
	"errors"
	"fmt"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App is the assembled catalog service together with the resources it owns.
type App struct {
	Fiber *fiber.App

	db       *gorm.DB
	mqClient *rabbitmq.Client
	log      *logrus.Logger
}

// New wires the store, the optional event publisher, the service and the HTTP
// layer from cfg. Resources opened before a failure are released.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{log: log}

	repo, err := a.openRepository(cfg)
	if err != nil {
		return nil, err
	}

	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.RabbitMQExchange,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.mqClient = mqClient
		publisher = mqClient
		log.WithField("exchange", mqClient.Exchange()).Info("Catalog events enabled")
	}

	productService := services.NewProductService(repo, publisher, log)
	a.Fiber = NewFiberApp(productService, log)
	return a, nil
}

// NewFiberApp builds the HTTP application around an existing service.
func NewFiberApp(productService *services.ProductService, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "catalog",
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(recover.New())

	handlers.NewHealthHandler(productService).RegisterRoutes(app)
	handlers.NewProductHandler(productService, log).RegisterRoutes(app)
	return app
}

func (a *App) openRepository(cfg *config.Config) (repositories.ProductRepository, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		a.log.Warn("Using in-memory product store; data is lost on exit")
		return repositories.NewMemoryProductRepository(), nil
	}

	db, err := database.Open(cfg, a.log)
	if err != nil {
		return nil, err
	}
	a.db = db

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = a.Close()
			return nil, err
		}
	}
	return repositories.NewGORMProductRepository(db), nil
}

// Close releases the AMQP client and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.mqClient != nil {
		if err := a.mqClient.Close(); err != nil {
			errs = append(errs, err)
		}
		a.mqClient = nil
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, err)
		}
		a.db = nil
	}
	return errors.Join(errs...)
}
