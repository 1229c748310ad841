package catalog

import "github.com/chrisdamba/foodstore/internal/models"

func promo(text string) *string {
	return &text
}

var seedRestaurants = []models.Restaurant{
	{
		ID:           "1",
		Name:         "Taberna Real",
		Image:        "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=400",
		Cuisine:      "Portuguesa",
		Rating:       4.8,
		DeliveryTime: "25-35 min",
		DeliveryFee:  2.50,
		IsOpen:       true,
		Promo:        promo("Desconto de 20%"),
		Categories:   []string{"Tradicional", "Grelhados"},
		Description:  "Autêntica cozinha portuguesa com pratos tradicionais",
	},
	{
		ID:           "2",
		Name:         "Pizza da Nonna",
		Image:        "https://images.pexels.com/photos/262978/pexels-photo-262978.jpeg?w=400",
		Cuisine:      "Italiana",
		Rating:       4.6,
		DeliveryTime: "30-40 min",
		DeliveryFee:  1.99,
		IsOpen:       true,
		Categories:   []string{"Pizza", "Massa"},
		Description:  "Pizzas artesanais no forno a lenha",
	},
	{
		ID:           "3",
		Name:         "Sushi Zen",
		Image:        "https://images.pexels.com/photos/3023476/pexels-photo-3023476.jpeg?w=400",
		Cuisine:      "Japonesa",
		Rating:       4.9,
		DeliveryTime: "40-50 min",
		DeliveryFee:  3.50,
		IsOpen:       true,
		Promo:        promo("Oferta: 2x1 em makis"),
		Categories:   []string{"Sushi", "Asiática"},
		Description:  "Sushi fresco e sashimi premium",
	},
	{
		ID:           "4",
		Name:         "Burger House",
		Image:        "https://images.unsplash.com/photo-1617347454431-f49d7ff5c3b1?w=400",
		Cuisine:      "Hambúrgueres",
		Rating:       4.4,
		DeliveryTime: "20-30 min",
		DeliveryFee:  1.50,
		IsOpen:       false,
		Categories:   []string{"Fast Food", "Hambúrgueres"},
		Description:  "Hambúrgueres gourmet com ingredientes frescos",
	},
	{
		ID:           "5",
		Name:         "Cantina do Bairro",
		Image:        "https://images.unsplash.com/photo-1621972750749-0fbb1abb7736?w=400",
		Cuisine:      "Portuguesa",
		Rating:       4.7,
		DeliveryTime: "35-45 min",
		DeliveryFee:  2.00,
		IsOpen:       true,
		Promo:        promo("Entrega grátis"),
		Categories:   []string{"Tradicional", "Caseira"},
		Description:  "Comida caseira portuguesa como a da avó",
	},
}

var seedCategories = []models.Category{
	{ID: "1", Name: "Promocões", Icon: "🔥", Color: "#ff6b6b"},
	{ID: "2", Name: "Portuguesa", Icon: "🇵🇹", Color: "#28c76f"},
	{ID: "3", Name: "Pizza", Icon: "🍕", Color: "#ff9f43"},
	{ID: "4", Name: "Sushi", Icon: "🍣", Color: "#17a2b8"},
	{ID: "5", Name: "Hambúrgueres", Icon: "🍔", Color: "#ffc107"},
	{ID: "6", Name: "Doces", Icon: "🧁", Color: "#e83e8c"},
	{ID: "7", Name: "Bebidas", Icon: "🥤", Color: "#6f42c1"},
	{ID: "8", Name: "Vegetariano", Icon: "🥗", Color: "#20c997"},
}

var seedMenus = map[string][]models.MenuItem{
	"1": {
		{
			ID:           "101",
			RestaurantID: "1",
			Name:         "Bacalhau à Brás",
			Description:  "Bacalhau desfiado com batata palha, ovos e azeitonas",
			Price:        14.50,
			Image:        "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=300",
			Category:     "Pratos Principais",
			IsAvailable:  true,
		},
		{
			ID:           "102",
			RestaurantID: "1",
			Name:         "Francesinha",
			Description:  "Sanduíche tradicional do Porto com molho especial",
			Price:        12.90,
			Image:        "https://images.pexels.com/photos/262978/pexels-photo-262978.jpeg?w=300",
			Category:     "Pratos Principais",
			IsAvailable:  true,
		},
		{
			ID:           "103",
			RestaurantID: "1",
			Name:         "Pastéis de Nata",
			Description:  "Famosos pastéis de nata portugueses (6 unidades)",
			Price:        7.50,
			Image:        "https://images.pexels.com/photos/3023476/pexels-photo-3023476.jpeg?w=300",
			Category:     "Sobremesas",
			IsAvailable:  true,
		},
	},
}

// DemoAddresses are offered at checkout when no profile is available.
var DemoAddresses = []models.UserAddress{
	{Label: "Casa", Street: "Rua das Flores, 123", City: "Lisboa", PostalCode: "1200-192", IsDefault: true},
	{Label: "Trabalho", Street: "Avenida da Liberdade, 456", City: "Lisboa", PostalCode: "1250-145"},
}

// Fallback serves the fixed seed catalog. Every call returns fresh copies.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (Fallback) Restaurants() []models.Restaurant {
	out := make([]models.Restaurant, len(seedRestaurants))
	for i, r := range seedRestaurants {
		r.Categories = append([]string(nil), r.Categories...)
		out[i] = r
	}
	return out
}

func (Fallback) Categories() []models.Category {
	return append([]models.Category(nil), seedCategories...)
}

// Menu returns nil for restaurants without a seeded menu.
func (Fallback) Menu(restaurantID string) []models.MenuItem {
	items, ok := seedMenus[restaurantID]
	if !ok {
		return nil
	}
	return append([]models.MenuItem(nil), items...)
}
