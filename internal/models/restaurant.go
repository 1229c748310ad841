package models

import (
	"sort"
	"strconv"
	"strings"
)

type Restaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	Cuisine      string   `json:"cuisine"`
	Rating       float64  `json:"rating"`
	DeliveryTime string   `json:"deliveryTime"` // "25-35 min"
	DeliveryFee  float64  `json:"deliveryFee"`
	IsOpen       bool     `json:"isOpen"`
	Promo        *string  `json:"promo"`
	Categories   []string `json:"categories"`
	Description  string   `json:"description"`
}

// RestaurantUpdate carries the fields of a partial restaurant update.
type RestaurantUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Image        *string  `json:"image,omitempty"`
	Cuisine      *string  `json:"cuisine,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	DeliveryTime *string  `json:"deliveryTime,omitempty"`
	DeliveryFee  *float64 `json:"deliveryFee,omitempty"`
	IsOpen       *bool    `json:"isOpen,omitempty"`
	Promo        *string  `json:"promo,omitempty"`
	Categories   []string `json:"categories,omitempty"`
}

// MinDeliveryMinutes parses the lower bound of DeliveryTime. Unparseable
// values sort last.
func (r Restaurant) MinDeliveryMinutes() int {
	lower, _, _ := strings.Cut(r.DeliveryTime, "-")
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(lower), "min")))
	if err != nil {
		return int(^uint(0) >> 1)
	}
	return n
}

func (r Restaurant) HasCategory(name string) bool {
	for _, c := range r.Categories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// SortRestaurants returns a sorted copy. Relevance keeps the backend order.
func SortRestaurants(restaurants []Restaurant, by string) []Restaurant {
	sorted := make([]Restaurant, len(restaurants))
	copy(sorted, restaurants)

	switch by {
	case SortRating:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	case SortDeliveryTime:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinDeliveryMinutes() < sorted[j].MinDeliveryMinutes()
		})
	case SortDeliveryFee:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DeliveryFee < sorted[j].DeliveryFee })
	}
	return sorted
}
