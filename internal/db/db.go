// Package db opens the SQLite file that holds the item list when the service
// runs with --backend=sqlite.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// itemPragmas apply to every connection. Each save rewrites the whole list,
// so a full fsync per commit is affordable.
var itemPragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=FULL",
}

// Open opens the item database at path and creates the items table when it
// is missing. Pass ":memory:" for a throwaway database.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening item database: %w", err)
	}

	// One connection: the repository already serialises writers, and a
	// :memory: database only exists on the connection that created it.
	conn.SetMaxOpenConns(1)

	for _, p := range itemPragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("item database %s: %q: %w", path, p, err)
		}
	}

	if err := ensureItemsTable(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
