// Package middleware holds the fiber middleware shared by the HTTP binaries.
package middleware

import (
	"time"

	"storeapi/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const startKey = "requestStart"

// RequestContext attaches a request-scoped entry carrying the request id,
// method and path to the request's user context. Install it after requestid.
func RequestContext(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		attachEntry(c, log)
		return c.Next()
	}
}

// RequestLogger is RequestContext plus one log line per completed request.
func RequestLogger(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entry, start := attachEntry(c, log)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		done := entry.WithFields(logrus.Fields{
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			done.Warn("Request failed")
		case status >= fiber.StatusBadRequest:
			done.Info("Request rejected")
		default:
			done.Info("Request completed")
		}
		return nil
	}
}

func attachEntry(c *fiber.Ctx, log *logrus.Logger) (*logrus.Entry, time.Time) {
	start := time.Now()
	c.Locals(startKey, start)

	entry := log.WithFields(logrus.Fields{
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		"method":     c.Method(),
		"path":       c.Path(),
	})
	c.SetUserContext(logging.WithEntry(c.UserContext(), entry))
	return entry, start
}
