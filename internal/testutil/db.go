// Package testutil provides shared helpers for package tests.
package testutil

import (
	"testing"

	"snsapp/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an in-memory SQLite database migrated with the full schema.
// Each call returns an isolated database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A pooled second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// QueryCounter counts SELECT statements issued through a gorm connection.
// Register it before the code under test runs and read Count afterwards.
type QueryCounter struct {
	Count int
}

// Attach registers the counter on db's query callback chain.
func (qc *QueryCounter) Attach(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Query().Before("gorm:query").Register("testutil:count_queries", func(*gorm.DB) {
		qc.Count++
	})
	if err != nil {
		t.Fatalf("register query counter: %v", err)
	}
}

// Reset zeroes the counter.
func (qc *QueryCounter) Reset() {
	qc.Count = 0
}
