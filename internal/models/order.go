package models

import "time"

// OrderItem is one line of an order as the backend stores it.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// OrderDraft is assembled from the cart right before submission.
type OrderDraft struct {
	ID              string         `json:"id"`
	RestaurantID    string         `json:"restaurantId"`
	Items           []CartLineItem `json:"items"`
	DeliveryAddress Address        `json:"deliveryAddress"`
	PaymentMethod   PaymentMethod  `json:"paymentMethod"`
	DeliveryOption  DeliveryOption `json:"deliveryOption"`
	Totals          Totals         `json:"totals"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	RestaurantID    string      `json:"restaurantId"`
	Items           []OrderItem `json:"items"`
	DeliveryAddress Address     `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryFee     float64     `json:"deliveryFee"`
	ServiceFee      float64     `json:"serviceFee"`
	Total           float64     `json:"total"`
}

func (d OrderDraft) Request() OrderRequest {
	items := make([]OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
		})
	}
	return OrderRequest{
		RestaurantID:    d.RestaurantID,
		Items:           items,
		DeliveryAddress: d.DeliveryAddress,
		PaymentMethod:   d.PaymentMethod.Type,
		Subtotal:        d.Totals.Subtotal,
		DeliveryFee:     d.Totals.DeliveryFee,
		ServiceFee:      d.Totals.ServiceFee,
		Total:           d.Totals.Total,
	}
}

// Order is the backend's view of a submitted order.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	RestaurantID    string      `json:"restaurantId"`
	RestaurantName  string      `json:"restaurantName"`
	Items           []OrderItem `json:"items"`
	DeliveryAddress Address     `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryFee     float64     `json:"deliveryFee"`
	ServiceFee      float64     `json:"serviceFee"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"` // e.g., "pending", "preparing", "delivered"
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// PlacedOrder pairs the local draft with the backend acknowledgment. Order is
// nil when the backend acknowledged with an empty body.
type PlacedOrder struct {
	Draft    OrderDraft `json:"draft"`
	Order    *Order     `json:"order,omitempty"`
	PlacedAt time.Time  `json:"placedAt"`
}

// Reference is the identifier shown to the customer.
func (p PlacedOrder) Reference() string {
	if p.Order != nil && p.Order.ID != "" {
		return p.Order.ID
	}
	return p.Draft.ID
}

// PlacedFromOrder rebuilds a history entry from a backend order, for orders
// placed outside the current session.
func PlacedFromOrder(o Order) PlacedOrder {
	items := make([]CartLineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, CartLineItem{
			MenuItemID:   it.MenuItemID,
			RestaurantID: o.RestaurantID,
			Name:         it.Name,
			Price:        it.Price,
			Quantity:     it.Quantity,
		})
	}
	payment, ok := FindPaymentMethod(o.PaymentMethod)
	if !ok {
		payment = PaymentMethod{Name: o.PaymentMethod, Type: o.PaymentMethod}
	}
	order := o
	return PlacedOrder{
		Draft: OrderDraft{
			ID:              o.ID,
			RestaurantID:    o.RestaurantID,
			Items:           items,
			DeliveryAddress: o.DeliveryAddress,
			PaymentMethod:   payment,
			Totals: Totals{
				Subtotal:    o.Subtotal,
				DeliveryFee: o.DeliveryFee,
				ServiceFee:  o.ServiceFee,
				Total:       o.Total,
			},
			CreatedAt: o.CreatedAt,
		},
		Order:    &order,
		PlacedAt: o.CreatedAt,
	}
}
