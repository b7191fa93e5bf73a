package main

import (
	"log"

	"knotpad-be/internal/config"
	"knotpad-be/internal/model"
	"knotpad-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for notebooks and notes...")

	if err := db.AutoMigrate(&model.Notebook{}, &model.Note{}); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	log.Println("Migration complete")
}
