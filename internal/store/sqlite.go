package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/inventory/internal/model"
)

// SQLiteFileName is the name of the SQLite database inside the cache directory.
const SQLiteFileName = "inventory.sqlite3"

// SQLiteBackend stores the item list in a SQLite table, one row per item.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend returns a backend using db. The schema must already exist.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// Load returns all items in insertion order.
func (b *SQLiteBackend) Load(ctx context.Context) ([]model.Item, error) {
	rows, err := b.db.QueryContext(ctx,
		`SELECT id, name, description, photo_path FROM items ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		var photo sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &photo); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		if photo.Valid {
			p := photo.String
			item.PhotoPath = &p
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Save replaces every stored row inside a single transaction.
func (b *SQLiteBackend) Save(ctx context.Context, items []model.Item) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (position, id, name, description, photo_path) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		var photo sql.NullString
		if item.PhotoPath != nil {
			photo = sql.NullString{String: *item.PhotoPath, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, item.ID, item.Name, item.Description, photo); err != nil {
			return fmt.Errorf("inserting item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}
