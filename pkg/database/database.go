package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rogenecarl/inventory-pos/internal/model"
	"github.com/rogenecarl/inventory-pos/pkg/config"
)

var db *gorm.DB

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(cfg *config.Config) error {
	var err error

	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  cfg.DB.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	// Open connection. TranslateError lets the registry detect slug
	// collisions via gorm.ErrDuplicatedKey and retry.
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:         logger.Default.LogMode(cfg.DB.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return err
	}

	// Get generic database object SQL
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get database object: %v", err)
		return err
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	fmt.Println("Database connected successfully")

	return migrate()
}

func migrate() error {
	if err := db.AutoMigrate(
		&model.Store{},
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Sale{},
		&model.SaleItem{},
	); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
