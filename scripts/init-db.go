package main

import (
	"fmt"
	"log"

	"github.com/ankirsydii/Orderly/internal/config"
	"github.com/ankirsydii/Orderly/internal/database"
	"github.com/ankirsydii/Orderly/internal/migrations"
	"github.com/ankirsydii/Orderly/internal/models"
)

// Resets the database to a fresh state: drops everything, recreates the
// schema, and seeds the default admin and starter menu. Development tool,
// never run this against a live store.
func main() {
	fmt.Println("Initializing database...")

	cfg := config.Load()

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.Credential{},
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.Credential{},
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Seeding default data...")
	if err := migrations.Seed(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Println("Database initialization completed successfully!")
	fmt.Println("Admin email:", cfg.AdminEmail)
}
