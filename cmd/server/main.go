// Package main implements the entry point for the task-list API server:
// configuration, logging, store selection, and the HTTP router.
package main

import (
	"context"
	"log"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/redact"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.Setup(cfg.Server)

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, logg)
	if err != nil {
		// Driver errors can echo the connection string back; scrub it.
		log.Fatalf("Failed to initialize application: %s", redact.Error(err))
	}

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
