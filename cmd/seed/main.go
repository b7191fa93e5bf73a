package main

import (
	"log"
	"os"

	"knotpad-be/internal/config"
	"knotpad-be/pkg/database"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	rawUserId := os.Getenv("SEED_USER_ID")
	if rawUserId == "" {
		log.Fatal("Error: SEED_USER_ID is not set")
	}
	userId, err := uuid.Parse(rawUserId)
	if err != nil {
		log.Fatalf("Error: SEED_USER_ID is not a valid uuid: %v", err)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Seeding demo notebooks for user %s...", userId)
	SeedNotebooks(db, userId)
	log.Println("Notebook seeding completed!")
}
