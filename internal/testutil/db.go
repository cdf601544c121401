// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/Skotchmaster/flogin/internal/config"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := config.OpenDB(context.Background(), config.Config{
		DBDriver:    "sqlite",
		DatabaseURL: "file::memory:",
	})
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
