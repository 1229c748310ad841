package models

// CartLineItem is one menu item in the cart with its quantity.
type CartLineItem struct {
	MenuItemID   string  `json:"menuItemId"`
	RestaurantID string  `json:"restaurantId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
}

func NewCartLineItem(item MenuItem, quantity int) CartLineItem {
	return CartLineItem{
		MenuItemID:   item.ID,
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Price:        item.Price,
		Image:        item.Image,
		Description:  item.Description,
		Quantity:     quantity,
	}
}

func (l CartLineItem) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	ServiceFee  float64 `json:"serviceFee"`
	Total       float64 `json:"total"`
}
