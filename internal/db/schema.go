package db

import (
	"database/sql"
	"fmt"
)

// itemsTable stores one row per item. position keeps the list in the order
// items were registered, since saves delete and reinsert every row.
const itemsTable = `
CREATE TABLE IF NOT EXISTS items (
    position    INTEGER NOT NULL,
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    photo_path  TEXT
);

CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);
`

func ensureItemsTable(conn *sql.DB) error {
	if _, err := conn.Exec(itemsTable); err != nil {
		return fmt.Errorf("creating items table: %w", err)
	}
	return nil
}
