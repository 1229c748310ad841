package models

const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"

	// CategoryAll selects every restaurant.
	CategoryAll = "all"

	DefaultDeliveryFee = 2.50
	DefaultServiceFee  = 1.00

	SortRelevance    = "relevance"
	SortRating       = "rating"
	SortDeliveryTime = "deliveryTime"
	SortDeliveryFee  = "deliveryFee"
)

var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
