package factories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/lucsky/cuid"
)

var promos = []string{"Desconto de 20%", "Entrega grátis", "Oferta: 2x1", "10% no primeiro pedido"}

type RestaurantFactory struct {
	nameCache sync.Map // used names
}

func (rf *RestaurantFactory) CreateRestaurant() models.Restaurant {
	profile := cuisineProfiles[fake.IntBetween(0, len(cuisineProfiles)-1)]
	minTime := fake.IntBetween(2, 7) * 5

	restaurant := models.Restaurant{
		ID:           cuid.New(),
		Name:         rf.createUniqueName(profile.cuisine),
		Image:        fmt.Sprintf("https://picsum.photos/seed/%s/400/300", cuid.Slug()),
		Cuisine:      profile.cuisine,
		Rating:       fake.Float64(1, 35, 50) / 10,
		DeliveryTime: fmt.Sprintf("%d-%d min", minTime, minTime+10),
		DeliveryFee:  float64(fake.IntBetween(0, 8)) * 0.5,
		IsOpen:       fake.IntBetween(1, 100) <= 85,
		Categories:   append([]string(nil), profile.categories...),
		Description:  fake.Lorem().Sentence(8),
	}
	if fake.IntBetween(1, 100) <= 25 {
		promo := pick(promos)
		restaurant.Promo = &promo
	}
	return restaurant
}

func (rf *RestaurantFactory) createUniqueName(cuisine string) string {
	base := strings.TrimSpace(fake.Company().Name())
	if fake.Bool() {
		base = fmt.Sprintf("%s %s", cuisine, fake.Person().LastName())
	}

	name := base
	counter := 2
	for {
		if _, exists := rf.nameCache.LoadOrStore(name, true); !exists {
			return name
		}
		name = fmt.Sprintf("%s %d", base, counter)
		counter++
	}
}
