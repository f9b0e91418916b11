// Package mock provides test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db wraps an isolated in-memory SQLite database for one test scenario.
type Db struct {
	conn   *gorm.DB
	models []any
}

// NewDb opens an in-memory SQLite database and migrates the given models.
// Each call returns an isolated database, so scenarios never share state.
func NewDb(models ...any) (*Db, error) {
	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	// A single connection keeps the in-memory schema alive for the whole
	// scenario.
	dbSQL.SetMaxOpenConns(1)

	conn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	if err := conn.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate models: %w", err)
	}

	return &Db{conn: conn, models: models}, nil
}

// DB returns the underlying gorm connection.
func (d *Db) DB() *gorm.DB {
	return d.conn
}

// Reset deletes all rows from every migrated table.
func (d *Db) Reset() error {
	for _, model := range d.models {
		err := d.conn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear table for %T: %w", model, err)
		}
	}
	return nil
}

// Close releases the database connection.
func (d *Db) Close() error {
	sqlDB, err := d.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
