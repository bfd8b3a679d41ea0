// cmd/migrate/main.go
package main

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"biteclub-backend/internal/config"
	"biteclub-backend/internal/infrastructure/database"
)

// Applies pending SQL migrations. Usage:
//
//	migrate [--dir=./migrations]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found, using environment variables")
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("[Config] Failed to load: %v", err)
	}

	dir := migrationDir()
	log.Printf("[Migrate] Applying migrations from %s", dir)

	if err := database.Migrate(dbConfig, dir); err != nil {
		log.Fatalf("[Migrate] Failed: %v", err)
	}

	log.Println("[Migrate] Done")
}

func migrationDir() string {
	for _, arg := range os.Args[1:] {
		if strings.HasPrefix(arg, "--dir=") {
			return strings.TrimPrefix(arg, "--dir=")
		}
	}
	return "./migrations"
}
