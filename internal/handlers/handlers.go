// Package handlers exposes the company and store services over HTTP.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MsgInvalidBody is returned when a request body cannot be decoded.
const MsgInvalidBody = "Invalid request body"

// pathID reads the :id route parameter. Anything that is not a uuid becomes
// uuid.Nil so validation reports it as a missing id.
func pathID(c *fiber.Ctx) uuid.UUID {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, MsgInvalidBody)
	}
	return nil
}
