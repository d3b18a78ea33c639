// Package server builds the Fiber application: global middleware plus the route table.
// It is kept separate from cmd/server so tests can run the exact production app in-process.
package server

import (
	"github.com/gofiber/fiber/v2"
	// cors allows browser clients on other origins to call the API
	"github.com/gofiber/fiber/v2/middleware/cors"
	// logger prints request details (method, path, status, duration) to stdout
	"github.com/gofiber/fiber/v2/middleware/logger"
	// recover turns a panic in any handler into a 500 instead of crashing the process
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trentd187/states-api/internal/handlers"
	"github.com/trentd187/states-api/internal/middleware"
	"github.com/trentd187/states-api/internal/states"
)

// Options tweaks how the app is built.
type Options struct {
	AccessLog bool // Enable the request logger (off in tests to keep output quiet)
}

// New creates the Fiber app with every route mounted.
func New(svc *states.Service, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "U.S. States API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// --- Global middleware ---
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	// --- Public routes ---
	app.Get("/", handlers.Index)
	app.Get("/health", handlers.HealthCheck)

	// GET /states?contig=true|false — all states, merged with their fun facts
	app.Get("/states", handlers.GetStates(svc))

	// Routes under /states/:state all resolve the state code first.
	// An unknown code is answered by the middleware and never reaches the handler.
	resolve := middleware.ResolveState(svc.Dataset())

	app.Get("/states/:state", resolve, handlers.GetState(svc))
	app.Get("/states/:state/capital", resolve, handlers.GetCapital())
	app.Get("/states/:state/nickname", resolve, handlers.GetNickname())
	app.Get("/states/:state/population", resolve, handlers.GetPopulation())
	app.Get("/states/:state/admission", resolve, handlers.GetAdmission())

	// Fun facts: read one at random, append, replace by index, remove by index
	app.Get("/states/:state/funfact", resolve, handlers.GetRandomFunFact(svc))
	app.Post("/states/:state/funfact", resolve, handlers.CreateFunFacts(svc))
	app.Patch("/states/:state/funfact", resolve, handlers.UpdateFunFact(svc))
	app.Delete("/states/:state/funfact", resolve, handlers.DeleteFunFact(svc))

	// Catch-all: must be registered last so it only sees unmatched requests
	app.Use(handlers.NotFound)

	return app
}
