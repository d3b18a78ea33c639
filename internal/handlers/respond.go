package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Messages returned in the {"message": ...} error envelope.
const (
	msgServerError        = "Server error"
	msgInvalidBody        = "Invalid request body"
	msgFunFactsRequired   = "State fun facts value required"
	msgFunFactsNotArray   = "State fun facts value must be an array"
	msgFunFactRequired    = "State fun fact value required"
	msgIndexRequired      = "State fun fact index value required"
	msgNoFunFactsTmpl     = "No Fun Facts found for %s"
	msgNoFunFactIndexTmpl = "No Fun Fact found at that index for %s"
)

// message writes {"message": msg} with the given status. Every error response in the
// API uses this envelope.
func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// serverError logs the real cause and sends a generic 500. Internal details such as
// SQL errors never reach the client.
func serverError(c *fiber.Ctx, err error) error {
	log.Printf("%s %s: %v", c.Method(), c.OriginalURL(), err)
	return message(c, fiber.StatusInternalServerError, msgServerError)
}

// ErrorHandler is the fiber.Config.ErrorHandler for the app. It catches errors returned
// from handlers and panics recovered by the recover middleware, and renders them in the
// same envelope as everything else.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// fiber.Error carries its own status (e.g. 405 or 413 raised by the framework)
	var e *fiber.Error
	if errors.As(err, &e) && e.Code < fiber.StatusInternalServerError {
		return message(c, e.Code, e.Message)
	}
	return serverError(c, err)
}
