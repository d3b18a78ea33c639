// Package middleware contains HTTP middleware functions for the States API.
// Middleware runs before the route handler, which makes it the right place for work
// every /states/:state route shares: normalising the code and finding the state.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/states-api/internal/dataset"
	"github.com/trentd187/states-api/internal/models"
)

// LocalsState is the c.Locals key under which ResolveState stores the models.StateRecord.
const LocalsState = "state"

// MsgInvalidState is returned for any :state parameter that isn't a known state.
const MsgInvalidState = "Invalid state abbreviation parameter"

// ResolveState returns a middleware that turns the :state path parameter into a StateRecord.
//
//   - The code is case-insensitive: "ks", "Ks" and "KS" all resolve to Kansas.
//   - Anything that isn't two letters is a malformed request → 400.
//   - Two letters that don't match a state → 404.
//
// On success the record is stored in c.Locals(LocalsState) for the handler to read,
// so no handler repeats the lookup.
func ResolveState(data *dataset.Dataset) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := dataset.NormalizeCode(c.Params("state"))

		if !dataset.ValidCodeFormat(code) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": MsgInvalidState,
			})
		}

		record, ok := data.Lookup(code)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": MsgInvalidState,
			})
		}

		c.Locals(LocalsState, record)
		return c.Next()
	}
}

// State reads the record that ResolveState stored for this request.
// ok is false if ResolveState was not applied to the route.
func State(c *fiber.Ctx) (models.StateRecord, bool) {
	record, ok := c.Locals(LocalsState).(models.StateRecord)
	return record, ok
}
