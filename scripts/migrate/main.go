// One-off migration helper. Waits for the configured database to come up,
// then applies the schema. Not part of request serving; run it once before
// starting the API in a fresh environment:
//
//	go run ./scripts/migrate
package main

import (
	"log"
	"time"

	"rentrate/config"
)

const maxRetries = 5

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("failed to load .env file: %v", err)
	}

	delay := 2 * time.Second
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = config.ConnectDB(); err == nil {
			break
		}
		if attempt < maxRetries {
			log.Printf("database not ready (attempt %d/%d), retrying in %s...", attempt, maxRetries, delay)
			time.Sleep(delay)
			delay *= 2
		}
	}
	if err != nil {
		log.Fatalf("failed to connect to database after %d attempts: %v", maxRetries, err)
	}
	log.Println("database connection successful")

	if err := config.AutoMigrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("database schema is up to date")
}
