package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/chrisdamba/foodstore/internal/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repositories.OrderRepository = (*OrderRepository)(nil)

// testPool connects to FOODSTORE_TEST_DATABASE_URL or skips.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("FOODSTORE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FOODSTORE_TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func testOrder(ref string, placedAt time.Time) *models.PlacedOrder {
	return &models.PlacedOrder{
		Draft: models.OrderDraft{
			ID:           "draft-" + ref,
			RestaurantID: "1",
			Items: []models.CartLineItem{
				{MenuItemID: "101", RestaurantID: "1", Name: "Bacalhau à Brás", Price: 14.50, Quantity: 2},
			},
			DeliveryAddress: models.Address{Street: "Rua Augusta 100", City: "Lisboa", PostalCode: "1100-053"},
			PaymentMethod:   models.PaymentMethods[2],
			DeliveryOption:  models.DeliveryOptions[0],
			Totals:          models.Totals{Subtotal: 29.00, DeliveryFee: 2.50, ServiceFee: 1.00, Total: 32.50},
			CreatedAt:       placedAt,
		},
		Order:    &models.Order{ID: ref, RestaurantName: "Taberna Real", Status: models.OrderStatusPending},
		PlacedAt: placedAt,
	}
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(testPool(t))
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.DeleteAll(ctx))
	t.Cleanup(func() { _ = repo.DeleteAll(ctx) })

	older := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	require.NoError(t, repo.BulkCreate(ctx, []*models.PlacedOrder{testOrder("a", older)}))
	require.NoError(t, repo.RecordOrder(ctx, *testOrder("b", newer)))
	// duplicates are ignored
	require.NoError(t, repo.Create(ctx, testOrder("b", newer)))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	orders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "b", orders[0].Reference())
	assert.Equal(t, "a", orders[1].Reference())

	got := orders[1]
	assert.Equal(t, "draft-a", got.Draft.ID)
	assert.Equal(t, "multibanco", got.Draft.PaymentMethod.Type)
	assert.Equal(t, "Multibanco", got.Draft.PaymentMethod.Name)
	assert.Equal(t, "standard", got.Draft.DeliveryOption.Value)
	assert.Equal(t, 32.50, got.Draft.Totals.Total)
	assert.Equal(t, "Taberna Real", got.Order.RestaurantName)
	require.Len(t, got.Draft.Items, 1)
	assert.Equal(t, 2, got.Draft.Items[0].Quantity)
	assert.True(t, older.Equal(got.PlacedAt))
}

var orderColumns = []string{
	"reference", "draft_id", "restaurant_id", "restaurant_name", "status",
	"payment_method", "delivery_option", "street", "city", "postal_code",
	"subtotal", "delivery_fee", "service_fee", "total", "items", "placed_at",
}

func newMockRepository(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewOrderRepository(mock), mock
}

func TestOrderRepository_BulkCreateCommits(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockRepository(t)
	placedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a, b := testOrder("a", placedAt), testOrder("b", placedAt)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO placed_orders").WithArgs(orderArgs(a)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO placed_orders").WithArgs(orderArgs(b)...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.BulkCreate(ctx, []*models.PlacedOrder{a, b}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_BulkCreateRollsBack(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockRepository(t)
	placedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO placed_orders").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.BulkCreate(ctx, []*models.PlacedOrder{testOrder("a", placedAt), testOrder("b", placedAt)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert order a")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetAllScansRows(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockRepository(t)
	placedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	items := []models.CartLineItem{
		{MenuItemID: "101", RestaurantID: "1", Name: "Bacalhau à Brás", Price: 14.50, Quantity: 2},
	}

	rows := pgxmock.NewRows(orderColumns).
		AddRow("order-1", "draft-1", "1", "Taberna Real", models.OrderStatusDelivered,
			"mbway", "express", "Rua Augusta 100", "Lisboa", "1100-053",
			29.00, 2.50, 1.00, 32.50, items, placedAt).
		AddRow("draft-2", "draft-2", "2", "", models.OrderStatusPending,
			"voucher", "drone", "Rua do Ouro 1", "Lisboa", "1100-060",
			10.00, 2.50, 1.00, 13.50, []models.CartLineItem{}, placedAt.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM placed_orders").WillReturnRows(rows)

	orders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "order-1", first.Reference())
	assert.Equal(t, "MBWay", first.Draft.PaymentMethod.Name)
	assert.Equal(t, "express", first.Draft.DeliveryOption.Value)
	assert.Equal(t, "Lisboa", first.Draft.DeliveryAddress.City)
	assert.Equal(t, 32.50, first.Draft.Totals.Total)
	assert.Equal(t, items, first.Draft.Items)
	assert.Equal(t, models.OrderStatusDelivered, first.Order.Status)
	assert.Equal(t, "Taberna Real", first.Order.RestaurantName)
	assert.True(t, placedAt.Equal(first.PlacedAt))

	// unknown payment and delivery values are kept as they are
	second := orders[1]
	assert.Equal(t, "voucher", second.Draft.PaymentMethod.Type)
	assert.Equal(t, "drone", second.Draft.DeliveryOption.Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CountAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("DELETE FROM placed_orders").WillReturnResult(pgxmock.NewResult("DELETE", 3))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.NoError(t, repo.DeleteAll(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_RecordOrderWrapsErrors(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockRepository(t)
	order := testOrder("a", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	mock.ExpectExec("INSERT INTO placed_orders").WithArgs(orderArgs(order)...).WillReturnError(errors.New("connection refused"))

	err := repo.RecordOrder(ctx, *order)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert order a")
	assert.NoError(t, mock.ExpectationsWereMet())
}
