package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/erazemk/inventory/internal/model"
)

// Repository owns the canonical item list. Every mutation runs load, modify
// and save under one process-wide write lock so concurrent requests cannot
// lose each other's changes. Reads share the lock in read mode.
type Repository struct {
	mu      sync.RWMutex
	backend Backend
}

// NewRepository returns a repository persisting through backend.
func NewRepository(backend Backend) *Repository {
	return &Repository{backend: backend}
}

// List returns all items in insertion order.
func (r *Repository) List(ctx context.Context) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.backend.Load(ctx)
}

// Save replaces the whole item list.
func (r *Repository) Save(ctx context.Context, items []model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Save(ctx, items)
}

// FindByID returns the item with the given id or ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (model.Item, error) {
	items, err := r.List(ctx)
	if err != nil {
		return model.Item{}, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return model.Item{}, ErrNotFound
	}
	return items[i], nil
}

// Insert appends a new item.
func (r *Repository) Insert(ctx context.Context, item model.Item) error {
	if item.ID == "" || strings.TrimSpace(item.Name) == "" {
		return ErrInvalidItem
	}
	return r.mutate(ctx, func(items []model.Item) ([]model.Item, error) {
		if indexOf(items, item.ID) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
		}
		return append(items, item), nil
	})
}

// UpdateFields applies the present fields of patch to the item and returns the result.
func (r *Repository) UpdateFields(ctx context.Context, id string, patch model.ItemPatch) (model.Item, error) {
	var updated model.Item
	err := r.mutate(ctx, func(items []model.Item) ([]model.Item, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		patch.Apply(&items[i])
		updated = items[i]
		return items, nil
	})
	return updated, err
}

// SetPhoto replaces the item's photo reference with photo (nil clears it).
// It returns the updated item and the previous reference, which the caller
// must delete from the photo store once nothing points at it.
func (r *Repository) SetPhoto(ctx context.Context, id string, photo *string) (model.Item, *string, error) {
	var (
		updated  model.Item
		previous *string
	)
	err := r.mutate(ctx, func(items []model.Item) ([]model.Item, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		previous = items[i].PhotoPath
		items[i].PhotoPath = photo
		updated = items[i]
		return items, nil
	})
	if err != nil {
		return model.Item{}, nil, err
	}
	return updated, previous, nil
}

// Delete removes the item and returns it so the caller can release its photo.
func (r *Repository) Delete(ctx context.Context, id string) (model.Item, error) {
	var removed model.Item
	err := r.mutate(ctx, func(items []model.Item) ([]model.Item, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, ErrNotFound
		}
		removed = items[i]
		return slices.Delete(items, i, i+1), nil
	})
	return removed, err
}

// mutate runs a read-modify-write cycle under the write lock. Nothing is
// saved when fn returns an error.
func (r *Repository) mutate(ctx context.Context, fn func([]model.Item) ([]model.Item, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.backend.Load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return r.backend.Save(ctx, items)
}

func indexOf(items []model.Item, id string) int {
	return slices.IndexFunc(items, func(it model.Item) bool { return it.ID == id })
}
