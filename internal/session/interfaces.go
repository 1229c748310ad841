package session

import (
	"context"
	"log/slog"

	"github.com/chrisdamba/foodstore/internal/catalog"
	"github.com/chrisdamba/foodstore/internal/models"
)

type Catalog interface {
	ListRestaurants(ctx context.Context, filter catalog.RestaurantFilter) ([]models.Restaurant, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
}

type FallbackProvider interface {
	Restaurants() []models.Restaurant
	Categories() []models.Category
	Menu(restaurantID string) []models.MenuItem
}

type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error)
}

// OrderRecorder is told about every acknowledged order. Recorder failures
// never undo a placed order.
type OrderRecorder interface {
	RecordOrder(ctx context.Context, order models.PlacedOrder) error
}

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a user-visible message, the toast of the storefront.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if n.Level == LevelError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, n.Title, "message", n.Message)
}

// Listener receives a snapshot after every state change.
type Listener func(s Snapshot)
