package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHTTPClient struct {
	err error
}

func (f failingHTTPClient) Do(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", opts...)
}

func TestClient_ListRestaurantsQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    RestaurantFilter
		wantQuery string
	}{
		{name: "no filter", filter: RestaurantFilter{}, wantQuery: ""},
		{name: "all category", filter: RestaurantFilter{Category: models.CategoryAll}, wantQuery: ""},
		{name: "category", filter: RestaurantFilter{Category: "Pizza"}, wantQuery: "category=Pizza"},
		{name: "search", filter: RestaurantFilter{Search: "sushi zen"}, wantQuery: "search=sushi+zen"},
		{name: "both", filter: RestaurantFilter{Category: "Pizza", Search: "nonna"}, wantQuery: "category=Pizza&search=nonna"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotPath, gotQuery string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				json.NewEncoder(w).Encode(NewFallback().Restaurants())
			})

			restaurants, err := client.ListRestaurants(context.Background(), tc.filter)

			require.NoError(t, err)
			assert.Len(t, restaurants, 5)
			assert.Equal(t, "/api/restaurants", gotPath)
			assert.Equal(t, tc.wantQuery, gotQuery)
		})
	}
}

func TestClient_BearerToken(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	}

	client := newTestClient(t, handler, WithTokenStore(NewMemoryTokenStore("abc123")))
	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)

	anonymous := newTestClient(t, handler)
	_, err = anonymous.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"bad input"}`, wantMsg: "bad input"},
		{name: "detail field", status: http.StatusNotFound, body: `{"detail":"Restaurant not found"}`, wantMsg: "Restaurant not found"},
		{name: "validation detail list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"msg":"field required"}]}`, wantMsg: "HTTP 422"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, wantMsg: "HTTP 500"},
		{name: "not json", status: http.StatusBadGateway, body: `<html>oops</html>`, wantMsg: "HTTP 502"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			_, err := client.GetRestaurant(context.Background(), "42")

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.wantMsg, apiErr.Error())
			assert.Equal(t, "/restaurants/42", apiErr.Endpoint)
		})
	}
}

func TestClient_NotFoundHelper(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetOrder(context.Background(), "x")

	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
}

func TestClient_NetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	client := NewClient("http://backend/api", WithHTTPClient(failingHTTPClient{err: cause}))

	_, err := client.ListRestaurants(context.Background(), RestaurantFilter{})

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "/restaurants", netErr.Endpoint)
}

func TestClient_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	restaurant, err := client.GetRestaurant(context.Background(), "1")
	assert.NoError(t, err)
	assert.Nil(t, restaurant)

	menu, err := client.GetMenu(context.Background(), "1")
	assert.NoError(t, err)
	assert.Nil(t, menu)

	order, err := client.SubmitOrder(context.Background(), models.OrderDraft{})
	assert.NoError(t, err)
	assert.Nil(t, order)
}

func TestClient_LoginStoresToken(t *testing.T) {
	store := NewMemoryTokenStore("")
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)

		var creds models.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "maria@email.com", creds.Email)

		json.NewEncoder(w).Encode(models.Token{AccessToken: "tok", TokenType: "bearer"})
	}, WithTokenStore(store))

	token, err := client.Login(context.Background(), models.Credentials{Email: "maria@email.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "tok", token.AccessToken)
	assert.True(t, client.IsAuthenticated())

	require.NoError(t, client.Logout())
	assert.False(t, client.IsAuthenticated())
}

func TestClient_SubmitOrderBody(t *testing.T) {
	var got models.OrderRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.Order{ID: "o-1", Status: models.OrderStatusPending})
	})
	draft := models.OrderDraft{
		RestaurantID:  "1",
		Items:         []models.CartLineItem{{MenuItemID: "101", Name: "Bacalhau à Brás", Price: 14.5, Quantity: 2}},
		PaymentMethod: models.PaymentMethods[3],
		Totals:        models.Totals{Subtotal: 29, DeliveryFee: 2.5, ServiceFee: 1, Total: 32.5},
	}

	order, err := client.SubmitOrder(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, "cash", got.PaymentMethod)
	assert.Equal(t, 32.5, got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/o-1/status", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "delivered", body["status"])
		io.WriteString(w, `{"message":"Order status updated successfully"}`)
	})

	assert.NoError(t, client.UpdateOrderStatus(context.Background(), "o-1", "delivered"))
}
