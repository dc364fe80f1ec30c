package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rentrate/models"
)

var DB *gorm.DB

var Ctx = context.Background()

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConnectDB opens the database selected by the environment: Postgres when
// DB_HOST is set, a local SQLite file otherwise.
func ConnectDB() error {
	db, err := openDB()
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	return nil
}

func openDB() (*gorm.DB, error) {
	if host := os.Getenv("DB_HOST"); host != "" {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			host,
			envOr("POSTGRES_USER", "rentrate"),
			envOr("POSTGRES_PASSWORD", "rentrate"),
			envOr("POSTGRES_DB", "rentrate"),
			envOr("DB_PORT", "5432"),
		)
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	}

	path := envOr("SQLITE_PATH", "rentrate.db")
	// Foreign keys must be on for the user->review and review->photo cascades.
	return gorm.Open(sqlite.Open(path+"?_foreign_keys=1"), &gorm.Config{TranslateError: true})
}

func AutoMigrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Review{},
		&models.Photo{},
		&models.Translation{},
	)
}
