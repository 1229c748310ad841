package session

import (
	"context"
	"sync"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListRestaurants(ctx context.Context, filter catalog.RestaurantFilter) ([]models.Restaurant, error) {
	args := m.Called(ctx, filter)
	restaurants, _ := args.Get(0).([]models.Restaurant)
	return restaurants, args.Error(1)
}

func (m *mockCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]models.Category)
	return categories, args.Error(1)
}

func (m *mockCatalog) GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	items, _ := args.Get(0).([]models.MenuItem)
	return items, args.Error(1)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) SubmitOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	args := m.Called(ctx, draft)
	order, _ := args.Get(0).(*models.Order)
	return order, args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordOrder(ctx context.Context, order models.PlacedOrder) error {
	return m.Called(ctx, order).Error(0)
}

type recordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *recordingNotifier) all() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

func (r *recordingNotifier) count(level Level) int {
	n := 0
	for _, item := range r.all() {
		if item.Level == level {
			n++
		}
	}
	return n
}
