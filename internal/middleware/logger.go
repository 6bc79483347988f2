package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Logger logs one entry per request. Errors returned by the handler chain are
// rendered through the app's error handler first so the logged status matches
// the response.
func Logger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := log.WithFields(logrus.Fields{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": c.IP(),
			"request_id":  GetRequestID(c),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("http request")
		case status >= fiber.StatusBadRequest:
			entry.Warn("http request")
		default:
			entry.Info("http request")
		}
		return nil
	}
}
