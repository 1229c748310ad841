package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
    CREATE TABLE IF NOT EXISTS placed_orders (
        reference       TEXT PRIMARY KEY,
        draft_id        TEXT NOT NULL,
        restaurant_id   TEXT NOT NULL,
        restaurant_name TEXT NOT NULL DEFAULT '',
        status          TEXT NOT NULL,
        payment_method  TEXT NOT NULL,
        delivery_option TEXT NOT NULL,
        street          TEXT NOT NULL,
        city            TEXT NOT NULL,
        postal_code     TEXT NOT NULL,
        subtotal        DOUBLE PRECISION NOT NULL,
        delivery_fee    DOUBLE PRECISION NOT NULL,
        service_fee     DOUBLE PRECISION NOT NULL,
        total           DOUBLE PRECISION NOT NULL,
        items           JSONB NOT NULL,
        placed_at       TIMESTAMPTZ NOT NULL
    )
`

const insertOrder = `
    INSERT INTO placed_orders (
        reference, draft_id, restaurant_id, restaurant_name, status,
        payment_method, delivery_option, street, city, postal_code,
        subtotal, delivery_fee, service_fee, total, items, placed_at
    ) VALUES (
        $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
    )
    ON CONFLICT (reference) DO NOTHING
`

// Connect opens a pool and checks the database is reachable.
func Connect(ctx context.Context, cfg models.DatabaseConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return pool, nil
}

// DB is the part of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type OrderRepository struct {
	pool DB
}

func NewOrderRepository(pool DB) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// EnsureSchema creates the orders table when missing.
func (r *OrderRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create placed_orders table: %w", err)
	}
	return nil
}

func orderArgs(order *models.PlacedOrder) []any {
	d := order.Draft
	status := models.OrderStatusPending
	restaurantName := ""
	if order.Order != nil {
		restaurantName = order.Order.RestaurantName
		if order.Order.Status != "" {
			status = order.Order.Status
		}
	}
	return []any{
		order.Reference(),
		d.ID,
		d.RestaurantID,
		restaurantName,
		status,
		d.PaymentMethod.Type,
		d.DeliveryOption.Value,
		d.DeliveryAddress.Street,
		d.DeliveryAddress.City,
		d.DeliveryAddress.PostalCode,
		d.Totals.Subtotal,
		d.Totals.DeliveryFee,
		d.Totals.ServiceFee,
		d.Totals.Total,
		d.Items,
		order.PlacedAt,
	}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []*models.PlacedOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, order := range orders {
		if _, err := tx.Exec(ctx, insertOrder, orderArgs(order)...); err != nil {
			return fmt.Errorf("failed to insert order %s: %w", order.Reference(), err)
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) Create(ctx context.Context, order *models.PlacedOrder) error {
	if _, err := r.pool.Exec(ctx, insertOrder, orderArgs(order)...); err != nil {
		return fmt.Errorf("failed to insert order %s: %w", order.Reference(), err)
	}
	return nil
}

// RecordOrder stores an order placed in the current session.
func (r *OrderRepository) RecordOrder(ctx context.Context, order models.PlacedOrder) error {
	return r.Create(ctx, &order)
}

// GetAll returns the history, most recent first.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*models.PlacedOrder, error) {
	query := `
        SELECT
            reference, draft_id, restaurant_id, restaurant_name, status,
            payment_method, delivery_option, street, city, postal_code,
            subtotal, delivery_fee, service_fee, total, items, placed_at
        FROM placed_orders
        ORDER BY placed_at DESC
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.PlacedOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*models.PlacedOrder, error) {
	var (
		reference, restaurantName, status string
		paymentType, deliveryValue        string
		placedAt                          time.Time
		d                                 models.OrderDraft
	)
	err := row.Scan(
		&reference,
		&d.ID,
		&d.RestaurantID,
		&restaurantName,
		&status,
		&paymentType,
		&deliveryValue,
		&d.DeliveryAddress.Street,
		&d.DeliveryAddress.City,
		&d.DeliveryAddress.PostalCode,
		&d.Totals.Subtotal,
		&d.Totals.DeliveryFee,
		&d.Totals.ServiceFee,
		&d.Totals.Total,
		&d.Items,
		&placedAt,
	)
	if err != nil {
		return nil, err
	}

	var ok bool
	if d.PaymentMethod, ok = models.FindPaymentMethod(paymentType); !ok {
		d.PaymentMethod = models.PaymentMethod{Name: paymentType, Type: paymentType}
	}
	if d.DeliveryOption, ok = models.FindDeliveryOption(deliveryValue); !ok {
		d.DeliveryOption = models.DeliveryOption{Value: deliveryValue, Label: deliveryValue}
	}
	d.CreatedAt = placedAt

	return &models.PlacedOrder{
		Draft: d,
		Order: &models.Order{
			ID:             reference,
			RestaurantID:   d.RestaurantID,
			RestaurantName: restaurantName,
			Status:         status,
		},
		PlacedAt: placedAt,
	}, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM placed_orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM placed_orders")
	return err
}
