package main

import (
	"context"
	"log"
	"os"

	"catalog/internal/app"
	"catalog/internal/config"
	"catalog/internal/logger"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrusLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	application, err := app.New(cfg, logrusLogger)
	if err != nil {
		logrusLogger.WithError(err).Fatal("Failed to initialize application")
	}

	go func() {
		logrusLogger.WithField("addr", cfg.AppPort).Info("Starting server")
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			logrusLogger.WithError(err).Fatal("Server failed to start")
		}
	}()

	// The server drains before the pool and AMQP connection are closed.
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"catalog": func(ctx context.Context) error {
				logrusLogger.Info("Shutting down server...")
				if err := application.Fiber.ShutdownWithContext(ctx); err != nil {
					logrusLogger.WithError(err).Error("Error during Fiber shutdown")
				}
				return application.Close()
			},
		},
	)

	exitCode := <-wait
	logrusLogger.WithField("exit_code", exitCode).Info("Server stopped")
	os.Exit(exitCode)
}
