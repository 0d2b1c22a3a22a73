package db

import (
	"errors"
	"fmt"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the sqlite3 driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/urbangear/retail-app/internal/config"
	"github.com/urbangear/retail-app/internal/models"
)

// ConnectAndMigrate opens the local database file with foreign-key
// enforcement on and brings the schema up to date. With MIGRATIONS set
// truthy, SQL migrations run via golang-migrate; otherwise AutoMigrate
// is the dev-convenience fallback.
func ConnectAndMigrate(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty, check the environment configuration")
	}
	logLevel := logger.Silent
	if config.ParseBool("DB_DEBUG", false) {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	dbConn, err := gorm.Open(sqlite.Open(dsn(path)), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Basic connectivity test
	if pingErr := dbConn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	if config.ParseBool("MIGRATIONS", false) {
		if err := runSQLMigrations(path); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Account{}, &models.Vendor{}, &models.Maker{}, &models.Group{}, &models.Measure{},
			&models.StockItem{}, &models.OrderState{}, &models.PickupLocation{},
			&models.SalesOrder{}, &models.SalesOrderLine{},
		}
		for _, m := range modelsToMigrate {
			if migErr := dbConn.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"accounts", "stock_items", "sales_orders"} {
		if !dbConn.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	return dbConn, nil
}

// dsn enables foreign-key enforcement on every connection to the file.
func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(path string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+path)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
