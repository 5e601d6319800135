package model

// Item is a registered inventory record as persisted in the backing store.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PhotoPath   *string `json:"photo_path"`
}

// HasPhoto reports whether the item references a stored photo.
func (i Item) HasPhoto() bool {
	return i.PhotoPath != nil && *i.PhotoPath != ""
}

// ItemPatch carries the optional fields of a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Name        *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil
}

// Apply copies the present fields of the patch onto the item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
}

// ItemView is the outward representation of an item. Photo is the absolute URL
// of the item's photo endpoint, or nil when the item has no photo.
type ItemView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Photo       *string `json:"photo"`
}

// SearchResult is the response of a search by id.
type SearchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
