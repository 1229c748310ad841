package factories

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantFactory_CreateRestaurant(t *testing.T) {
	Seed(7)
	rf := &RestaurantFactory{}

	names := map[string]bool{}
	for i := 0; i < 50; i++ {
		r := rf.CreateRestaurant()

		require.NotEmpty(t, r.ID)
		assert.False(t, names[r.Name], "duplicate name %q", r.Name)
		names[r.Name] = true
		assert.GreaterOrEqual(t, r.Rating, 3.5)
		assert.LessOrEqual(t, r.Rating, 5.0)
		assert.Regexp(t, regexp.MustCompile(`^\d+-\d+ min$`), r.DeliveryTime)
		assert.Positive(t, r.MinDeliveryMinutes())
		assert.NotEmpty(t, r.Categories)
	}
}

func TestMenuItemFactory_CreateMenu(t *testing.T) {
	Seed(7)
	r := (&RestaurantFactory{}).CreateRestaurant()

	menu := (&MenuItemFactory{}).CreateMenu(r, 3, 6)

	assert.GreaterOrEqual(t, len(menu), 3)
	assert.LessOrEqual(t, len(menu), 6)
	for _, item := range menu {
		assert.Equal(t, r.ID, item.RestaurantID)
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.Category)
		assert.GreaterOrEqual(t, item.Price, 3.0)
	}
}

func TestRandomDish_UnknownCuisine(t *testing.T) {
	category, name := randomDish("Marciana")

	assert.Equal(t, "Pratos do Dia", category)
	assert.Equal(t, "Especial do Chef", name)
}

func TestUserFactory_CreateUser(t *testing.T) {
	Seed(7)
	u := (&UserFactory{}).CreateUser("demo@foodstore.local")

	assert.Equal(t, "demo@foodstore.local", u.Email)
	assert.NotEmpty(t, u.Name)
	addr, ok := u.DefaultAddress()
	require.True(t, ok)
	assert.Equal(t, "Casa", addr.Label)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{3}$`), addr.PostalCode)
}
