// Package dbtest opens throwaway in-memory SQLite databases for repository tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tenuestore/tenue-backend/pkg/db"
)

// Open returns a GORM handle on a private in-memory database with the given
// models migrated. Each call gets its own database so tests never share rows.
func Open(t testing.TB, models ...any) *gorm.DB {
	t.Helper()
	return OpenClient(t, models...).DB()
}

// OpenClient is Open but returns the wrapping db.Client.
func OpenClient(t testing.TB, models ...any) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps shared-cache SQLite from reporting table locks.
	if sqlDB, err := client.SQL(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if len(models) > 0 {
		if err := client.DB().AutoMigrate(models...); err != nil {
			t.Fatalf("failed to migrate sqlite: %v", err)
		}
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
