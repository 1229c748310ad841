package repositories

import (
	"context"

	"github.com/chrisdamba/foodstore/internal/models"
)

// OrderRepository keeps the local history of placed orders.
type OrderRepository interface {
	BulkCreate(ctx context.Context, orders []*models.PlacedOrder) error
	Create(ctx context.Context, order *models.PlacedOrder) error
	GetAll(ctx context.Context) ([]*models.PlacedOrder, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
