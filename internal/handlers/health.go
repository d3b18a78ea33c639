// Package handlers contains the HTTP route handler functions for the States API.
// Each handler corresponds to one API endpoint and is responsible for reading the
// request, calling the merge layer or the fun-fact store, and writing a JSON response.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and reachable.
// No database query is made, so a slow store never fails the liveness probe.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
