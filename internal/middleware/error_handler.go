package middleware

import (
	"errors"
	"time"

	"storeapi/internal/apperror"
	"storeapi/internal/logging"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed Store API request.
type ErrorResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

// ErrorHandler renders errors returned by handlers. Application errors get
// the status of their kind, *fiber.Error keeps its own code and anything else
// is a 500 carrying the error text. Server errors are logged with the request
// body and the time spent.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		resp := ErrorResponse{Success: false, Message: err.Error()}
		status := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		var appErr *apperror.Error
		switch {
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			resp.Message = fiberErr.Message
		case errors.As(err, &appErr):
			status = apperror.StatusCode(appErr)
			resp.Message = appErr.Error()
			if appErr.Kind == apperror.KindValidation {
				resp.Errors = appErr.Fields
			}
		}

		if status >= fiber.StatusInternalServerError {
			entry := logging.FromContextOr(c.UserContext(), log)
			fields := logrus.Fields{
				"endpoint": c.Path(),
				"method":   c.Method(),
				"status":   status,
				"body":     string(c.Body()),
			}
			if start, ok := c.Locals(startKey).(time.Time); ok {
				fields["latency_ms"] = time.Since(start).Milliseconds()
			}
			entry.WithFields(fields).WithError(err).Error("Unhandled error while executing endpoint")
		}

		return c.Status(status).JSON(resp)
	}
}
