package session

import (
	"errors"
	"fmt"
)

// ViewState is the single active screen of a session.
type ViewState string

const (
	ViewHome             ViewState = "home"
	ViewRestaurantList   ViewState = "restaurant-list"
	ViewRestaurantDetail ViewState = "restaurant-detail"
	ViewCart             ViewState = "cart"
)

var allViews = []ViewState{ViewHome, ViewRestaurantList, ViewRestaurantDetail, ViewCart}

// Event names a transition trigger.
type Event string

const (
	EventSelectCategory   Event = "select-category"
	EventOpenRestaurant   Event = "open-restaurant"
	EventAddToCart        Event = "add-to-cart"
	EventOpenCart         Event = "open-cart"
	EventBackToRestaurant Event = "back-to-restaurant"
	EventBackToHome       Event = "back-to-home"
	EventBackToList       Event = "back-to-list"
	EventSearch           Event = "search"
	EventOrderPlaced      Event = "order-placed"
)

var ErrInvalidTransition = errors.New("session: invalid transition")

type transitionKey struct {
	from  ViewState
	event Event
}

var transitions = buildTransitions()

func buildTransitions() map[transitionKey]ViewState {
	// cart back target depends on whether a restaurant is selected, see backEvent
	t := map[transitionKey]ViewState{
		{ViewRestaurantDetail, EventAddToCart}:  ViewCart,
		{ViewCart, EventBackToRestaurant}:       ViewRestaurantDetail,
		{ViewCart, EventBackToHome}:             ViewHome,
		{ViewRestaurantList, EventBackToHome}:   ViewHome,
		{ViewRestaurantDetail, EventBackToList}: ViewRestaurantList,
		{ViewHome, EventSearch}:                 ViewRestaurantList,
		{ViewRestaurantList, EventSearch}:       ViewRestaurantList,
		{ViewCart, EventOrderPlaced}:            ViewHome,
	}
	for _, v := range allViews {
		t[transitionKey{v, EventSelectCategory}] = ViewRestaurantList
		t[transitionKey{v, EventOpenRestaurant}] = ViewRestaurantDetail
		t[transitionKey{v, EventOpenCart}] = ViewCart
	}
	return t
}

// nextView looks the transition up in the table.
func nextView(from ViewState, event Event) (ViewState, error) {
	to, ok := transitions[transitionKey{from, event}]
	if !ok {
		return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, event, from)
	}
	return to, nil
}

// backEvent resolves the back action of a view into a named transition.
func backEvent(from ViewState, restaurantSelected bool) (Event, error) {
	switch from {
	case ViewCart:
		if restaurantSelected {
			return EventBackToRestaurant, nil
		}
		return EventBackToHome, nil
	case ViewRestaurantList:
		return EventBackToHome, nil
	case ViewRestaurantDetail:
		return EventBackToList, nil
	}
	return "", fmt.Errorf("%w: back from %s", ErrInvalidTransition, from)
}

// sequencer hands out increasing request tokens for one fetch family. Only
// the response to the latest token may be applied.
type sequencer struct {
	latest uint64
}

func (s *sequencer) next() uint64 {
	s.latest++
	return s.latest
}

func (s *sequencer) isLatest(token uint64) bool {
	return token == s.latest
}
