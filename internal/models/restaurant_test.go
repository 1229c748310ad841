package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestaurant_MinDeliveryMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "25-35 min", want: 25},
		{in: "15 - 20 min", want: 15},
		{in: "40 min", want: 40},
		{in: "soon", want: int(^uint(0) >> 1)},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Restaurant{DeliveryTime: tc.in}.MinDeliveryMinutes())
		})
	}
}

func TestSortRestaurants(t *testing.T) {
	restaurants := []Restaurant{
		{ID: "a", Rating: 4.2, DeliveryTime: "30-40 min", DeliveryFee: 1.99},
		{ID: "b", Rating: 4.8, DeliveryTime: "20-30 min", DeliveryFee: 2.99},
		{ID: "c", Rating: 4.5, DeliveryTime: "15-25 min", DeliveryFee: 0},
	}
	ids := func(rs []Restaurant) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "b", "c"}, ids(SortRestaurants(restaurants, SortRelevance)))
	assert.Equal(t, []string{"b", "c", "a"}, ids(SortRestaurants(restaurants, SortRating)))
	assert.Equal(t, []string{"c", "b", "a"}, ids(SortRestaurants(restaurants, SortDeliveryTime)))
	assert.Equal(t, []string{"c", "a", "b"}, ids(SortRestaurants(restaurants, SortDeliveryFee)))
	assert.Equal(t, "a", restaurants[0].ID)
}

func TestRestaurant_HasCategory(t *testing.T) {
	r := Restaurant{Categories: []string{"Pizza", "Promocões"}}

	assert.True(t, r.HasCategory("pizza"))
	assert.False(t, r.HasCategory("Sushi"))
}

func TestUser_DefaultAddress(t *testing.T) {
	var nobody *User
	_, ok := nobody.DefaultAddress()
	assert.False(t, ok)

	u := &User{Addresses: []UserAddress{{Label: "Work"}, {Label: "Home", IsDefault: true}}}
	addr, ok := u.DefaultAddress()
	assert.True(t, ok)
	assert.Equal(t, "Home", addr.Label)
}
