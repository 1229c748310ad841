package factories

import (
	"fmt"
	"sort"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/lucsky/cuid"
)

type MenuItemFactory struct{}

// CreateMenu builds between min and max items matching the restaurant's
// cuisine.
func (mf *MenuItemFactory) CreateMenu(restaurant models.Restaurant, min, max int) []models.MenuItem {
	n := fake.IntBetween(min, max)
	items := make([]models.MenuItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, mf.CreateMenuItem(restaurant))
	}
	return items
}

func (mf *MenuItemFactory) CreateMenuItem(restaurant models.Restaurant) models.MenuItem {
	category, name := randomDish(restaurant.Cuisine)
	return models.MenuItem{
		ID:           cuid.New(),
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  fake.Lorem().Sentence(10),
		Price:        fake.Float64(2, 3, 25),
		Image:        fmt.Sprintf("https://picsum.photos/seed/%s/300/200", cuid.Slug()),
		Category:     category,
		IsAvailable:  fake.IntBetween(1, 100) <= 90,
	}
}

func randomDish(cuisine string) (category, name string) {
	for _, p := range cuisineProfiles {
		if p.cuisine != cuisine {
			continue
		}
		categories := make([]string, 0, len(p.dishes))
		for c := range p.dishes {
			categories = append(categories, c)
		}
		sort.Strings(categories) // map order would defeat seeding
		category = pick(categories)
		return category, pick(p.dishes[category])
	}
	return "Pratos do Dia", "Especial do Chef"
}
