package config

import (
	"fmt"
	"log"
	"os"

	"github.com/Aman5012/Food-Nutrition-Analyzer/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Load reads .env into the process environment. A missing file is not an
// error; deployments pass configuration through the environment directly.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
}

// Getenv returns the value of key, or fallback when key is unset or empty.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB connects to Postgres for lookup history. Returns nil when DB_HOST
// is unset or the connection fails; the analyze flow runs fine without it.
func InitDB() *gorm.DB {
	if os.Getenv("DB_HOST") == "" {
		return nil
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Failed to connect to database, lookup history disabled: %v", err)
		return nil
	}

	if err := db.AutoMigrate(&models.LookupRecord{}); err != nil {
		log.Printf("AutoMigrate failed, lookup history disabled: %v", err)
		return nil
	}
	return db
}
