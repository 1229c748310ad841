// Package catalog talks to the storefront REST backend and provides the seed
// data used when the backend cannot be reached at startup.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/google/uuid"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RestaurantFilter narrows a restaurant listing. Empty fields and the "all"
// category do not filter.
type RestaurantFilter struct {
	Category string
	Search   string
}

func (f RestaurantFilter) query() string {
	params := url.Values{}
	if f.Category != "" && f.Category != models.CategoryAll {
		params.Set("category", f.Category)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

type Client struct {
	apiBase string
	http    HTTPClient
	tokens  TokenStore
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) { cl.http = c }
}

func WithTokenStore(s TokenStore) Option {
	return func(cl *Client) { cl.tokens = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient builds a client for the API rooted at apiBase, e.g.
// "http://localhost:8001/api". No request timeout is set.
func NewClient(apiBase string, opts ...Option) *Client {
	c := &Client{
		apiBase: strings.TrimRight(apiBase, "/"),
		http:    &http.Client{},
		tokens:  NewMemoryTokenStore(""),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one request. It reports false when the backend answered with an
// empty body, in which case out is left untouched.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) (bool, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("failed to encode request for %s: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+endpoint, reader)
	if err != nil {
		return false, fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	token, err := c.tokens.Token()
	if err != nil {
		c.logger.Warn("could not read auth token", "error", err)
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "endpoint", endpoint, "request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.http.Do(req)
	if err != nil {
		netErr := &NetworkError{Endpoint: endpoint, Err: err}
		c.logger.Error("api request failed", "endpoint", endpoint, "error", netErr)
		return false, netErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		netErr := &NetworkError{Endpoint: endpoint, Err: err}
		c.logger.Error("api request failed", "endpoint", endpoint, "error", netErr)
		return false, netErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    errorMessage(data, resp.StatusCode),
		}
		c.logger.Error("api request failed", "endpoint", endpoint, "status", resp.StatusCode, "error", apiErr)
		return false, apiErr
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}
	return true, nil
}

// errorMessage prefers the server's "message", then a string "detail".
func errorMessage(data []byte, status int) string {
	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err == nil {
		for _, key := range []string{"message", "detail"} {
			if msg, ok := body[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return "HTTP " + strconv.Itoa(status)
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) (bool, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func pathID(id string) string {
	return url.PathEscape(id)
}

// Restaurants

func (c *Client) ListRestaurants(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if _, err := c.get(ctx, "/restaurants"+filter.query(), &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	ok, err := c.get(ctx, "/restaurants/"+pathID(id), &restaurant)
	if err != nil || !ok {
		return nil, err
	}
	return &restaurant, nil
}

func (c *Client) GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if _, err := c.get(ctx, "/restaurants/"+pathID(restaurantID)+"/menu", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateRestaurant(ctx context.Context, restaurant models.Restaurant) (*models.Restaurant, error) {
	var created models.Restaurant
	ok, err := c.do(ctx, http.MethodPost, "/restaurants", restaurant, &created)
	if err != nil || !ok {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateRestaurant(ctx context.Context, id string, update models.RestaurantUpdate) (*models.Restaurant, error) {
	var updated models.Restaurant
	ok, err := c.do(ctx, http.MethodPut, "/restaurants/"+pathID(id), update, &updated)
	if err != nil || !ok {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteRestaurant(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/restaurants/"+pathID(id), nil, nil)
	return err
}

// Categories

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if _, err := c.get(ctx, "/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	var created models.Category
	ok, err := c.do(ctx, http.MethodPost, "/categories", category, &created)
	if err != nil || !ok {
		return nil, err
	}
	return &created, nil
}

// Users

// Register creates an account and stores the returned access token.
func (c *Client) Register(ctx context.Context, registration models.Registration) (*models.Token, error) {
	return c.authenticate(ctx, "/users/register", registration)
}

// Login stores the returned access token for later requests.
func (c *Client) Login(ctx context.Context, credentials models.Credentials) (*models.Token, error) {
	return c.authenticate(ctx, "/users/login", credentials)
}

func (c *Client) authenticate(ctx context.Context, endpoint string, body interface{}) (*models.Token, error) {
	var token models.Token
	ok, err := c.do(ctx, http.MethodPost, endpoint, body, &token)
	if err != nil || !ok {
		return nil, err
	}
	if token.AccessToken != "" {
		if err := c.tokens.SetToken(token.AccessToken); err != nil {
			return nil, err
		}
	}
	return &token, nil
}

func (c *Client) Logout() error {
	return c.tokens.ClearToken()
}

func (c *Client) IsAuthenticated() bool {
	token, err := c.tokens.Token()
	return err == nil && token != ""
}

func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	ok, err := c.get(ctx, "/users/profile", &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	ok, err := c.do(ctx, http.MethodPut, "/users/profile", update, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

func (c *Client) AddAddress(ctx context.Context, address models.UserAddress) error {
	_, err := c.do(ctx, http.MethodPost, "/users/addresses", address, nil)
	return err
}

func (c *Client) UpdateAddress(ctx context.Context, index int, address models.UserAddress) error {
	_, err := c.do(ctx, http.MethodPut, "/users/addresses/"+strconv.Itoa(index), address, nil)
	return err
}

// Orders

func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest) (*models.Order, error) {
	var created models.Order
	ok, err := c.do(ctx, http.MethodPost, "/orders", order, &created)
	if err != nil || !ok {
		return nil, err
	}
	return &created, nil
}

// SubmitOrder posts a checkout draft. A nil order with a nil error is an
// acknowledgment with an empty body.
func (c *Client) SubmitOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	return c.CreateOrder(ctx, draft.Request())
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if _, err := c.get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	ok, err := c.get(ctx, "/orders/"+pathID(id), &order)
	if err != nil || !ok {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	_, err := c.do(ctx, http.MethodPut, "/orders/"+pathID(id)+"/status", body, nil)
	return err
}

// Menu items

func (c *Client) CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	var created models.MenuItem
	ok, err := c.do(ctx, http.MethodPost, "/menu-items", item, &created)
	if err != nil || !ok {
		return nil, err
	}
	return &created, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	ok, err := c.get(ctx, "/menu-items/"+pathID(id), &item)
	if err != nil || !ok {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, update models.MenuItemUpdate) (*models.MenuItem, error) {
	var updated models.MenuItem
	ok, err := c.do(ctx, http.MethodPut, "/menu-items/"+pathID(id), update, &updated)
	if err != nil || !ok {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/menu-items/"+pathID(id), nil, nil)
	return err
}
