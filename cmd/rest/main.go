package main

import (
	"context"
	"log"

	"excel-analytics-be/internal/bootstrap"
	"excel-analytics-be/internal/config"
	"excel-analytics-be/internal/server"
	"excel-analytics-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Consumer Service...")
		if err := container.AuditConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Audit Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
