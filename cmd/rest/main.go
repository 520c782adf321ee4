package main

import (
	"context"
	"log"

	"ai-journal-be/internal/bootstrap"
	"ai-journal-be/internal/config"
	"ai-journal-be/internal/server"
	"ai-journal-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 4. Start Background Services
	go container.Hub.Run()

	if err := container.PersistenceService.Consume(context.Background()); err != nil {
		log.Fatalf("Unable to start persistence consumer: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
