package sqlstore

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects with a postgres DSN and migrates the schema.
func OpenPostgres(dsn string, cfg *gorm.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db)
}

// OpenSQLite opens a SQLite file. The pool is capped at one connection:
// SQLite allows a single writer, and an in-memory database only exists on
// the connection that created it.
func OpenSQLite(dsn string, cfg *gorm.Config) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	return New(db)
}
