package store

import (
	"context"

	"github.com/erazemk/inventory/internal/model"
)

// Backend persists the full item list. Save replaces prior contents atomically,
// and Load returns an empty list when nothing was ever saved.
type Backend interface {
	Load(ctx context.Context) ([]model.Item, error)
	Save(ctx context.Context, items []model.Item) error
}
