// Package database owns the GORM connection, schema migration, seeding, and
// the health probe backing the /health endpoint.
package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/config"
	"retail-analytics/internal/model"
)

// Connect opens the configured backend and applies the pool settings.
// Production runs on postgres; development and tests run on sqlite so the
// app boots with zero external services.
func Connect(cfg config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, apperror.Newf(apperror.KindConfiguration, "unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// A single connection serializes writes and keeps :memory: databases
		// from splitting across pool members.
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the schema and the composite indexes the dashboard
// queries lean on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return createIndexes(db)
}

// createIndexes adds the composite indexes AutoMigrate cannot express.
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_date ON orders(customer_id, order_date)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_date ON orders(status, order_date)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_product ON order_items(order_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(last_name, first_name)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// Health describes database connectivity and pool pressure.
type Health struct {
	Status          string `json:"status"`
	Dialect         string `json:"dialect"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
	Error           string `json:"error,omitempty"`
}

// CheckHealth pings the database and reports pool statistics.
func CheckHealth(db *gorm.DB) Health {
	h := Health{Status: "healthy", Dialect: db.Dialector.Name()}

	sqlDB, err := db.DB()
	if err != nil {
		h.Status = "unhealthy"
		h.Error = err.Error()
		return h
	}
	if err := sqlDB.Ping(); err != nil {
		h.Status = "unhealthy"
		h.Error = err.Error()
		return h
	}

	stats := sqlDB.Stats()
	h.OpenConnections = stats.OpenConnections
	h.InUse = stats.InUse
	h.Idle = stats.Idle
	return h
}
