package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextView(t *testing.T) {
	tests := []struct {
		name    string
		from    ViewState
		event   Event
		want    ViewState
		wantErr bool
	}{
		{name: "category from home", from: ViewHome, event: EventSelectCategory, want: ViewRestaurantList},
		{name: "category from cart", from: ViewCart, event: EventSelectCategory, want: ViewRestaurantList},
		{name: "restaurant from list", from: ViewRestaurantList, event: EventOpenRestaurant, want: ViewRestaurantDetail},
		{name: "cart from detail", from: ViewRestaurantDetail, event: EventOpenCart, want: ViewCart},
		{name: "add to cart from detail", from: ViewRestaurantDetail, event: EventAddToCart, want: ViewCart},
		{name: "add to cart from home", from: ViewHome, event: EventAddToCart, wantErr: true},
		{name: "cart back to restaurant", from: ViewCart, event: EventBackToRestaurant, want: ViewRestaurantDetail},
		{name: "cart back home", from: ViewCart, event: EventBackToHome, want: ViewHome},
		{name: "list back home", from: ViewRestaurantList, event: EventBackToHome, want: ViewHome},
		{name: "detail back home", from: ViewRestaurantDetail, event: EventBackToHome, wantErr: true},
		{name: "detail back to list", from: ViewRestaurantDetail, event: EventBackToList, want: ViewRestaurantList},
		{name: "search from home", from: ViewHome, event: EventSearch, want: ViewRestaurantList},
		{name: "search from list", from: ViewRestaurantList, event: EventSearch, want: ViewRestaurantList},
		{name: "search from cart", from: ViewCart, event: EventSearch, wantErr: true},
		{name: "order placed from cart", from: ViewCart, event: EventOrderPlaced, want: ViewHome},
		{name: "order placed from detail", from: ViewRestaurantDetail, event: EventOrderPlaced, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := nextView(tc.from, tc.event)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tc.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBackEvent(t *testing.T) {
	tests := []struct {
		name     string
		from     ViewState
		selected bool
		want     Event
	}{
		{name: "cart with restaurant", from: ViewCart, selected: true, want: EventBackToRestaurant},
		{name: "cart without restaurant", from: ViewCart, want: EventBackToHome},
		{name: "list", from: ViewRestaurantList, want: EventBackToHome},
		{name: "detail", from: ViewRestaurantDetail, selected: true, want: EventBackToList},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := backEvent(tc.from, tc.selected)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := backEvent(ViewHome, false)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSequencer(t *testing.T) {
	var s sequencer

	first := s.next()
	assert.True(t, s.isLatest(first))

	second := s.next()
	assert.False(t, s.isLatest(first))
	assert.True(t, s.isLatest(second))
}
