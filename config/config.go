package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nutritrack-backend/models"
)

// LoadEnv reads the .env file if present. Missing files are fine in
// production where the environment is set externally.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}

// InitDB opens the Postgres connection and migrates the schema.
func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "nutritrack"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := MigrateSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// MigrateSchema creates or updates the tables for every model.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Consultant{},
		&models.Admin{},
		&models.ConsultantRequest{},
		&models.UserConsultant{},
		&models.UserGoal{},
		&models.ConsultantNote{},
		&models.WeightMeasurement{},
		&models.WaterIntake{},
		&models.ExerciseEntry{},
		&models.MealEntry{},
		&models.StreakHistory{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
