package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns an empty in-memory item database that lives until the
// test ends. Backend tests use it in place of inventory.sqlite3.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := Open(":memory:")
	if err != nil {
		t.Fatalf("in-memory item database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}
