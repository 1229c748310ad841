package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback_SeedData(t *testing.T) {
	fb := NewFallback()

	assert.Len(t, fb.Restaurants(), 5)
	assert.Len(t, fb.Categories(), 8)
	assert.Len(t, fb.Menu("1"), 3)
	assert.Nil(t, fb.Menu("2"))
}

func TestFallback_ReturnsCopies(t *testing.T) {
	fb := NewFallback()

	restaurants := fb.Restaurants()
	restaurants[0].Name = "changed"
	restaurants[0].Categories[0] = "changed"

	fresh := fb.Restaurants()
	assert.Equal(t, "Taberna Real", fresh[0].Name)
	assert.Equal(t, "Tradicional", fresh[0].Categories[0])
}
