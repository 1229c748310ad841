// Package cart holds the storefront cart: an ordered list of line items that
// is only ever changed through the Engine.
package cart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/lucsky/cuid"
)

var (
	ErrIndexOutOfRange = errors.New("cart: line index out of range")
	ErrEmptyCart       = errors.New("cart: cart is empty")
)

// Selection is a menu item picked on the restaurant page with its quantity.
type Selection struct {
	Item     models.MenuItem
	Quantity int
}

type Engine struct {
	items       []models.CartLineItem
	deliveryFee float64
	serviceFee  float64
	now         func() time.Time
}

func NewEngine() *Engine {
	return &Engine{
		deliveryFee: models.DefaultDeliveryFee,
		serviceFee:  models.DefaultServiceFee,
		now:         time.Now,
	}
}

// AddItems replaces the cart contents with the given selections, keeping
// their order. Selections with a non-positive quantity are skipped.
func (e *Engine) AddItems(selections []Selection) {
	items := make([]models.CartLineItem, 0, len(selections))
	for _, s := range selections {
		if s.Quantity <= 0 {
			continue
		}
		items = append(items, models.NewCartLineItem(s.Item, s.Quantity))
	}
	e.items = items
}

// UpdateQuantity sets the quantity of the line at index. A quantity of zero
// or less removes the line.
func (e *Engine) UpdateQuantity(index, quantity int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	if quantity <= 0 {
		return e.RemoveItem(index)
	}
	e.items[index].Quantity = quantity
	return nil
}

// RemoveItem deletes the line at index; later lines shift down by one.
func (e *Engine) RemoveItem(index int) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	items := make([]models.CartLineItem, 0, len(e.items)-1)
	items = append(items, e.items[:index]...)
	e.items = append(items, e.items[index+1:]...)
	return nil
}

func (e *Engine) checkIndex(index int) error {
	if index < 0 || index >= len(e.items) {
		return fmt.Errorf("%w: %d (cart has %d lines)", ErrIndexOutOfRange, index, len(e.items))
	}
	return nil
}

func (e *Engine) Clear() {
	e.items = nil
}

// Items returns a copy of the line items in insertion order.
func (e *Engine) Items() []models.CartLineItem {
	items := make([]models.CartLineItem, len(e.items))
	copy(items, e.items)
	return items
}

func (e *Engine) Len() int {
	return len(e.items)
}

func (e *Engine) IsEmpty() bool {
	return len(e.items) == 0
}

// Count is the number of units across all lines.
func (e *Engine) Count() int {
	n := 0
	for _, it := range e.items {
		n += it.Quantity
	}
	return n
}

// RestaurantID is the restaurant of the first line. The cart only ever holds
// one restaurant's items.
func (e *Engine) RestaurantID() string {
	if len(e.items) == 0 {
		return ""
	}
	return e.items[0].RestaurantID
}

func (e *Engine) Totals() models.Totals {
	subtotal := 0.0
	for _, it := range e.items {
		subtotal += it.LineTotal()
	}
	subtotal = roundCents(subtotal)
	return models.Totals{
		Subtotal:    subtotal,
		DeliveryFee: e.deliveryFee,
		ServiceFee:  e.serviceFee,
		Total:       roundCents(subtotal + e.deliveryFee + e.serviceFee),
	}
}

// Checkout assembles an order draft from the current cart. The cart is left
// untouched; clearing happens once the order is acknowledged.
func (e *Engine) Checkout(address models.Address, payment models.PaymentMethod, option models.DeliveryOption) (models.OrderDraft, error) {
	if e.IsEmpty() {
		return models.OrderDraft{}, ErrEmptyCart
	}
	return models.OrderDraft{
		ID:              cuid.New(),
		RestaurantID:    e.RestaurantID(),
		Items:           e.Items(),
		DeliveryAddress: address,
		PaymentMethod:   payment,
		DeliveryOption:  option,
		Totals:          e.Totals(),
		CreatedAt:       e.now(),
	}, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
