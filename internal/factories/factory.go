// Package factories generates fake catalog data for the development backend.
package factories

import (
	"math/rand"

	"github.com/jaswdr/faker"
)

var fake = faker.New()

// Seed makes subsequent generation reproducible.
func Seed(seed int64) {
	fake = faker.NewWithSeed(rand.NewSource(seed))
}

type cuisineProfile struct {
	cuisine    string
	categories []string
	dishes     map[string][]string // menu category -> dish names
}

var cuisineProfiles = []cuisineProfile{
	{
		cuisine:    "Portuguesa",
		categories: []string{"Portuguesa", "Tradicional"},
		dishes: map[string][]string{
			"Pratos Principais": {"Bacalhau à Brás", "Francesinha", "Arroz de Pato", "Polvo à Lagareiro", "Bitoque"},
			"Sobremesas":        {"Pastéis de Nata", "Arroz Doce", "Baba de Camelo"},
			"Bebidas":           {"Vinho Verde", "Sumol", "Água das Pedras"},
		},
	},
	{
		cuisine:    "Italiana",
		categories: []string{"Pizza", "Massa"},
		dishes: map[string][]string{
			"Pizzas":     {"Margherita", "Quattro Formaggi", "Diavola", "Capricciosa"},
			"Massas":     {"Spaghetti Carbonara", "Lasagna", "Penne Arrabbiata"},
			"Sobremesas": {"Tiramisu", "Panna Cotta"},
		},
	},
	{
		cuisine:    "Japonesa",
		categories: []string{"Sushi", "Asiática"},
		dishes: map[string][]string{
			"Sushi":   {"Combinado 16 peças", "Uramaki Salmão", "Sashimi Misto", "Temaki Atum"},
			"Quentes": {"Ramen", "Gyoza", "Tempura de Camarão"},
		},
	},
	{
		cuisine:    "Hambúrgueres",
		categories: []string{"Hambúrgueres", "Fast Food"},
		dishes: map[string][]string{
			"Hambúrgueres":    {"Classic Cheeseburger", "Bacon BBQ", "Smash Duplo", "Veggie Burger"},
			"Acompanhamentos": {"Batata Frita", "Onion Rings"},
			"Bebidas":         {"Milkshake de Baunilha", "Limonada"},
		},
	},
	{
		cuisine:    "Vegetariana",
		categories: []string{"Vegetariano", "Saudável"},
		dishes: map[string][]string{
			"Pratos":  {"Buddha Bowl", "Caril de Grão", "Lasanha de Legumes", "Falafel Wrap"},
			"Sumos":   {"Sumo Detox", "Smoothie de Frutos Vermelhos"},
			"Saladas": {"Salada de Quinoa", "Salada Grega"},
		},
	},
	{
		cuisine:    "Pastelaria",
		categories: []string{"Doces", "Bebidas"},
		dishes: map[string][]string{
			"Doces":   {"Bolo de Chocolate", "Cheesecake", "Éclair", "Croissant Misto"},
			"Bebidas": {"Galão", "Meia de Leite", "Chá Gelado"},
		},
	},
}

func pick(values []string) string {
	return values[fake.IntBetween(0, len(values)-1)]
}
