package database

import (
	"errors"
	"log"
	"os"
	"time"

	"wholesale-pos/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the MySQL connection described by DB_DSN and syncs the
// schema. The returned handle is passed into the handler constructors;
// there is no package-level DB state.
func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, errors.New("DB_DSN not set; configure your database in .env")
	}

	var db *gorm.DB
	var err error

	// Wait for the DB to be ready (docker-compose startups)
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to MySQL and synced schema")
	return db, nil
}

// Migrate creates or updates every table the app uses. Also called by
// the tests against their in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.CartItem{},
		&models.Category{},
		&models.Product{},
		&models.StockBatch{},
		&models.StockBatchItem{},
		&models.SaleTransaction{},
		&models.SaleItem{},
		&models.CashLedger{},
		&models.CashSettlement{},
	)
}
