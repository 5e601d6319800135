package store

import "errors"

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicateID is returned when inserting an item whose id is already stored.
	ErrDuplicateID = errors.New("duplicate item id")
	// ErrCorrupt is returned when the backing store cannot be decoded.
	ErrCorrupt = errors.New("backing store is corrupt")
)

// ErrInvalidItem is returned when inserting an item without an id or name.
var ErrInvalidItem = errors.New("item requires an id and a name")
