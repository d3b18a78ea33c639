// cmd/server/main.go
// This is the entry point for the U.S. States API server.
// It loads configuration, opens the fun-fact store, loads the bundled state dataset,
// mounts the routes and starts listening. Startup failures abort with log.Fatal.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trentd187/states-api/internal/config"
	"github.com/trentd187/states-api/internal/database"
	"github.com/trentd187/states-api/internal/dataset"
	"github.com/trentd187/states-api/internal/server"
	"github.com/trentd187/states-api/internal/states"
	"github.com/trentd187/states-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	facts, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open fun fact store:", err)
	}

	// The static dataset is compiled into the binary; a parse failure here means a bad build.
	data, err := dataset.Load()
	if err != nil {
		log.Fatal("Failed to load states dataset:", err)
	}

	app := server.New(states.NewService(data, facts), server.Options{AccessLog: true})

	// Shut down cleanly on Ctrl+C or SIGTERM (sent by Docker / ECS when stopping a task),
	// letting in-flight requests finish.
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %s (store: %s, env: %s)", cfg.Port, cfg.StoreDriver, cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// openStore builds the FunFactStore selected by STORE_DRIVER.
// For postgres it also applies pending migrations before handing out the store.
func openStore(cfg *config.Config) (store.FunFactStore, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("Using in-memory fun fact store; data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	if err := database.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		return nil, err
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(db), nil
}
