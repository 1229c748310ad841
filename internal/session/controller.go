// Package session owns the storefront session: the active view, the
// catalog data on screen and the cart. All state changes go through the
// Controller; presentation code only reads snapshots.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chrisdamba/foodstore/internal/cart"
	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
)

var (
	ErrNothingSelected    = errors.New("session: no items selected")
	ErrCheckoutInProgress = errors.New("session: checkout in progress")
)

type Dependencies struct {
	Catalog   Catalog
	Fallback  FallbackProvider
	Submitter OrderSubmitter
	Recorders []OrderRecorder
	Notifier  Notifier
	Logger    *slog.Logger
}

// CheckoutRequest holds the choices made on the cart screen.
type CheckoutRequest struct {
	Address        models.Address
	PaymentMethod  models.PaymentMethod
	DeliveryOption models.DeliveryOption
}

type Controller struct {
	catalog   Catalog
	fallback  FallbackProvider
	submitter OrderSubmitter
	recorders []OrderRecorder
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time

	mu        sync.Mutex
	listeners []Listener
	cart      *cart.Engine

	view               ViewState
	selectedCategory   *models.Category
	selectedRestaurant *models.Restaurant
	searchTerm         string
	restaurants        []models.Restaurant
	categories         []models.Category
	menu               []models.MenuItem
	offline            bool
	checkingOut        bool

	restaurantSeq sequencer
	menuSeq       sequencer
}

func NewController(deps Dependencies) *Controller {
	c := &Controller{
		catalog:   deps.Catalog,
		fallback:  deps.Fallback,
		submitter: deps.Submitter,
		recorders: deps.Recorders,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
		now:       time.Now,
		cart:      cart.NewEngine(),
		view:      ViewHome,
	}
	if c.fallback == nil {
		c.fallback = catalog.NewFallback()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Logger: c.logger}
	}
	return c
}

// Subscribe registers a listener for state changes.
func (c *Controller) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) changed() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (c *Controller) notify(level Level, title, message string) {
	c.notifier.Notify(Notification{Level: level, Title: title, Message: message})
}

// transitionLocked moves to the view the table assigns to event. The view is
// frozen while an order is being submitted.
func (c *Controller) transitionLocked(event Event) error {
	if c.checkingOut {
		return ErrCheckoutInProgress
	}
	to, err := nextView(c.view, event)
	if err != nil {
		return err
	}
	c.logger.Debug("view transition", "from", c.view, "event", event, "to", to)
	c.view = to
	return nil
}

// Load performs the initial catalog fetch. A family that cannot be fetched
// is filled from the fallback seed data and the session goes offline.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	token := c.restaurantSeq.next()
	c.mu.Unlock()

	categories, catErr := c.catalog.ListCategories(ctx)
	restaurants, restErr := c.catalog.ListRestaurants(ctx, catalog.RestaurantFilter{})

	c.mu.Lock()
	if catErr != nil {
		c.logger.Error("failed to load categories, using fallback data", "error", catErr)
		categories = c.fallback.Categories()
	}
	c.categories = categories

	if c.restaurantSeq.isLatest(token) {
		if restErr != nil {
			c.logger.Error("failed to load restaurants, using fallback data", "error", restErr)
			restaurants = c.fallback.Restaurants()
		}
		c.restaurants = restaurants
	}
	c.offline = catErr != nil || restErr != nil
	c.mu.Unlock()

	if err := errors.Join(catErr, restErr); err != nil {
		c.notify(LevelError, "Could not reach the server", fmt.Sprintf("Showing offline data: %v", err))
	}
	c.changed()
}

// SelectCategory shows the restaurants of a category. On fetch failure the
// previous list stays on screen.
func (c *Controller) SelectCategory(ctx context.Context, category models.Category) error {
	c.mu.Lock()
	if err := c.transitionLocked(EventSelectCategory); err != nil {
		c.mu.Unlock()
		return err
	}
	selected := category
	c.selectedCategory = &selected
	c.selectedRestaurant = nil
	c.searchTerm = ""
	token := c.restaurantSeq.next()
	c.mu.Unlock()
	c.changed()

	c.fetchRestaurants(ctx, token, catalog.RestaurantFilter{Category: category.Name})
	return nil
}

// Search shows the restaurants matching a free-text term.
func (c *Controller) Search(ctx context.Context, term string) error {
	c.mu.Lock()
	if err := c.transitionLocked(EventSearch); err != nil {
		c.mu.Unlock()
		return err
	}
	c.selectedCategory = nil
	c.selectedRestaurant = nil
	c.searchTerm = term
	token := c.restaurantSeq.next()
	c.mu.Unlock()
	c.changed()

	c.fetchRestaurants(ctx, token, catalog.RestaurantFilter{Search: term})
	return nil
}

func (c *Controller) fetchRestaurants(ctx context.Context, token uint64, filter catalog.RestaurantFilter) {
	restaurants, err := c.catalog.ListRestaurants(ctx, filter)

	c.mu.Lock()
	if !c.restaurantSeq.isLatest(token) {
		c.mu.Unlock()
		c.logger.Debug("discarding stale restaurant response", "token", token)
		return
	}
	if err == nil {
		c.restaurants = restaurants
		c.offline = false
	}
	c.mu.Unlock()

	if err != nil {
		c.notify(LevelError, "Could not load restaurants", err.Error())
		return
	}
	c.changed()
}

// OpenRestaurant shows a restaurant's page and fetches its menu.
func (c *Controller) OpenRestaurant(ctx context.Context, restaurant models.Restaurant) error {
	c.mu.Lock()
	if err := c.transitionLocked(EventOpenRestaurant); err != nil {
		c.mu.Unlock()
		return err
	}
	selected := restaurant
	c.selectedRestaurant = &selected
	c.menu = nil
	token := c.menuSeq.next()
	c.mu.Unlock()
	c.changed()

	menu, err := c.catalog.GetMenu(ctx, restaurant.ID)

	c.mu.Lock()
	if !c.menuSeq.isLatest(token) {
		c.mu.Unlock()
		c.logger.Debug("discarding stale menu response", "token", token)
		return nil
	}
	if err != nil && c.offline {
		menu, err = c.fallback.Menu(restaurant.ID), nil
	}
	if err == nil {
		c.menu = menu
	}
	c.mu.Unlock()

	if err != nil {
		c.notify(LevelError, "Could not load the menu", err.Error())
		return nil
	}
	c.changed()
	return nil
}

// AddToCart replaces the cart with the selections made on the restaurant
// page and opens the cart.
func (c *Controller) AddToCart(selections []cart.Selection) error {
	c.mu.Lock()
	if c.checkingOut {
		c.mu.Unlock()
		return ErrCheckoutInProgress
	}
	if _, err := nextView(c.view, EventAddToCart); err != nil {
		c.mu.Unlock()
		return err
	}
	count := 0
	for _, s := range selections {
		if s.Quantity > 0 {
			count++
		}
	}
	if count == 0 {
		c.mu.Unlock()
		return ErrNothingSelected
	}
	c.cart.AddItems(selections)
	_ = c.transitionLocked(EventAddToCart)
	c.mu.Unlock()

	c.notify(LevelSuccess, "Added to cart!", fmt.Sprintf("%d item(s) added to your cart.", count))
	c.changed()
	return nil
}

func (c *Controller) OpenCart() error {
	c.mu.Lock()
	err := c.transitionLocked(EventOpenCart)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.changed()
	return nil
}

// Back leaves the current view. From the cart it returns to the selected
// restaurant when there is one, otherwise home.
func (c *Controller) Back(ctx context.Context) error {
	c.mu.Lock()
	event, err := backEvent(c.view, c.selectedRestaurant != nil)
	if err == nil {
		err = c.transitionLocked(event)
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}

	var token uint64
	switch event {
	case EventBackToList:
		c.selectedRestaurant = nil
		c.menu = nil
	case EventBackToHome:
		c.selectedCategory = nil
		c.selectedRestaurant = nil
		c.searchTerm = ""
		token = c.restaurantSeq.next()
	}
	c.mu.Unlock()
	c.changed()

	if event == EventBackToHome {
		c.fetchRestaurants(ctx, token, catalog.RestaurantFilter{})
	}
	return nil
}

// UpdateQuantity changes a cart line; zero or less removes it.
func (c *Controller) UpdateQuantity(index, quantity int) error {
	if quantity <= 0 {
		return c.RemoveItem(index)
	}
	c.mu.Lock()
	if c.checkingOut {
		c.mu.Unlock()
		return ErrCheckoutInProgress
	}
	err := c.cart.UpdateQuantity(index, quantity)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.changed()
	return nil
}

func (c *Controller) RemoveItem(index int) error {
	c.mu.Lock()
	if c.checkingOut {
		c.mu.Unlock()
		return ErrCheckoutInProgress
	}
	err := c.cart.RemoveItem(index)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.notify(LevelInfo, "Item removed", "Item removed from the cart.")
	c.changed()
	return nil
}

// Checkout submits the cart as an order. On success the cart is cleared and
// the session returns home; on failure nothing changes.
func (c *Controller) Checkout(ctx context.Context, req CheckoutRequest) (*models.PlacedOrder, error) {
	c.mu.Lock()
	if c.checkingOut {
		c.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	if _, err := nextView(c.view, EventOrderPlaced); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	draft, err := c.cart.Checkout(req.Address, req.PaymentMethod, req.DeliveryOption)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.checkingOut = true
	c.mu.Unlock()

	c.logger.Info("submitting order", "draft_id", draft.ID, "restaurant_id", draft.RestaurantID, "total", draft.Totals.Total)
	order, err := c.submitter.SubmitOrder(ctx, draft)

	c.mu.Lock()
	c.checkingOut = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Error("order submission failed", "draft_id", draft.ID, "error", err)
		c.notify(LevelError, "Order failed", "Your order could not be sent. Please try again.")
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	placed := models.PlacedOrder{Draft: draft, Order: order, PlacedAt: c.now()}
	refetch := c.selectedCategory != nil || c.searchTerm != ""
	c.cart.Clear()
	if err := c.transitionLocked(EventOrderPlaced); err != nil {
		c.logger.Warn("unexpected view after checkout", "view", c.view, "error", err)
		c.view = ViewHome
	}
	c.selectedCategory = nil
	c.selectedRestaurant = nil
	c.searchTerm = ""
	c.menu = nil
	var token uint64
	if refetch {
		token = c.restaurantSeq.next()
	}
	c.mu.Unlock()

	c.notify(LevelSuccess, "Order placed!", fmt.Sprintf("Your order %s was sent to the restaurant.", placed.Reference()))
	c.record(ctx, placed)
	c.changed()

	if refetch {
		c.fetchRestaurants(ctx, token, catalog.RestaurantFilter{})
	}
	return &placed, nil
}

func (c *Controller) record(ctx context.Context, placed models.PlacedOrder) {
	for _, r := range c.recorders {
		if err := r.RecordOrder(ctx, placed); err != nil {
			c.logger.Error("failed to record order", "order", placed.Reference(), "error", err)
		}
	}
}
