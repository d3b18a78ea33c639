package handlers

import (
	_ "embed" // Required for the //go:embed directives below

	"github.com/gofiber/fiber/v2"
)

//go:embed pages/index.html
var indexPage []byte

//go:embed pages/404.html
var notFoundPage []byte

// Index handles GET / with a static HTML overview of the API.
func Index(c *fiber.Ctx) error {
	c.Type("html")
	return c.Send(indexPage)
}

// NotFound is the catch-all for any unmatched path. The body follows the client's
// Accept header: HTML for browsers, JSON for API clients.
//   - text/html (or no preference) → the 404 HTML page
//   - application/json            → {"message": "404 Not Found"}
//   - anything else               → plain text
func NotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)

	switch c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) {
	case fiber.MIMETextHTML:
		c.Type("html")
		return c.Send(notFoundPage)
	case fiber.MIMEApplicationJSON:
		return c.JSON(fiber.Map{"message": "404 Not Found"})
	default:
		return c.SendString("404 Not Found")
	}
}
