package session

import "github.com/chrisdamba/foodstore/internal/models"

// Snapshot is a read-only copy of the session state for rendering.
type Snapshot struct {
	View               ViewState
	SelectedCategory   *models.Category
	SelectedRestaurant *models.Restaurant
	SearchTerm         string
	Restaurants        []models.Restaurant
	Categories         []models.Category
	Menu               []models.MenuItem
	Cart               []models.CartLineItem
	CartCount          int
	Totals             models.Totals
	Offline            bool
	CheckingOut        bool
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		View:        c.view,
		SearchTerm:  c.searchTerm,
		Restaurants: append([]models.Restaurant(nil), c.restaurants...),
		Categories:  append([]models.Category(nil), c.categories...),
		Menu:        append([]models.MenuItem(nil), c.menu...),
		Cart:        c.cart.Items(),
		CartCount:   c.cart.Count(),
		Totals:      c.cart.Totals(),
		Offline:     c.offline,
		CheckingOut: c.checkingOut,
	}
	if c.selectedCategory != nil {
		category := *c.selectedCategory
		s.SelectedCategory = &category
	}
	if c.selectedRestaurant != nil {
		restaurant := *c.selectedRestaurant
		s.SelectedRestaurant = &restaurant
	}
	return s
}

// FindRestaurant looks a restaurant up among those on screen.
func (s Snapshot) FindRestaurant(id string) (models.Restaurant, bool) {
	for _, r := range s.Restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return models.Restaurant{}, false
}

// FindCategory matches a category by id or name.
func (s Snapshot) FindCategory(key string) (models.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == key || c.Name == key {
			return c, true
		}
	}
	return models.Category{}, false
}

func (s Snapshot) FindMenuItem(id string) (models.MenuItem, bool) {
	for _, m := range s.Menu {
		if m.ID == id {
			return m, true
		}
	}
	return models.MenuItem{}, false
}
