package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestItemHasPhoto(t *testing.T) {
	assert.False(t, Item{}.HasPhoto())
	assert.False(t, Item{PhotoPath: strPtr("")}.HasPhoto())
	assert.True(t, Item{PhotoPath: strPtr("1-abc.jpg")}.HasPhoto())
}

func TestItemPatchApply(t *testing.T) {
	item := Item{ID: "a", Name: "Drill", Description: "cordless"}

	ItemPatch{Name: strPtr("Hammer")}.Apply(&item)
	assert.Equal(t, "Hammer", item.Name)
	assert.Equal(t, "cordless", item.Description)

	ItemPatch{Description: strPtr("")}.Apply(&item)
	assert.Equal(t, "Hammer", item.Name)
	assert.Equal(t, "", item.Description)
}

func TestItemPatchEmpty(t *testing.T) {
	assert.True(t, ItemPatch{}.Empty())
	assert.False(t, ItemPatch{Description: strPtr("x")}.Empty())
}
