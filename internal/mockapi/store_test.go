package mockapi

import (
	"sync"
	"testing"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PromoFilterSurvivesSearch(t *testing.T) {
	s := NewStore(0)

	got := s.ListRestaurants(PromoCategory, "portuguesa")

	assert.Equal(t, []string{"Taberna Real", "Cantina do Bairro"}, names(got))
}

func TestStore_AddressDefaults(t *testing.T) {
	s := NewStore(0)
	_, err := s.CreateUser(models.Registration{Name: "Rui", Email: "Rui@Example.test"}, []byte("hash"))
	require.NoError(t, err)

	require.NoError(t, s.AddAddress("rui@example.test", models.UserAddress{Label: "Casa"}))
	require.NoError(t, s.AddAddress("rui@example.test", models.UserAddress{Label: "Ginásio"}))
	require.NoError(t, s.UpdateAddress("rui@example.test", 1, models.UserAddress{Label: "Ginásio", IsDefault: true}))
	assert.ErrorIs(t, s.UpdateAddress("rui@example.test", 2, models.UserAddress{}), ErrBadAddressID)

	u, err := s.User("RUI@example.test")
	require.NoError(t, err)
	require.Len(t, u.Addresses, 2)
	assert.False(t, u.Addresses[0].IsDefault)
	assert.True(t, u.Addresses[1].IsDefault)

	_, err = s.CreateUser(models.Registration{Email: "rui@example.test"}, nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestStore_OrdersNewestFirst(t *testing.T) {
	s := NewStore(0)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	req := models.OrderRequest{RestaurantID: "2", Items: []models.OrderItem{{MenuItemID: "x", Quantity: 1}}}

	first, err := s.CreateOrder("u1", req)
	require.NoError(t, err)
	second, err := s.CreateOrder("u1", req)
	require.NoError(t, err)
	_, err = s.CreateOrder("u2", req)
	require.NoError(t, err)

	orders := s.OrdersFor("u1")
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Equal(t, "Pizza da Nonna", orders[0].RestaurantName)

	_, err = s.Order("u2", first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ReturnedValuesAreDetached(t *testing.T) {
	s := NewStore(0)
	_, err := s.CreateUser(models.Registration{Name: "Rui", Email: "rui@example.test"}, nil)
	require.NoError(t, err)
	require.NoError(t, s.AddAddress("rui@example.test", models.UserAddress{Label: "Casa"}))

	u, err := s.User("rui@example.test")
	require.NoError(t, err)
	u.Addresses[0].Label = "Changed"

	u, err = s.User("rui@example.test")
	require.NoError(t, err)
	assert.Equal(t, "Casa", u.Addresses[0].Label)

	r, err := s.GetRestaurant("1")
	require.NoError(t, err)
	r.Categories[0] = "Changed"
	*r.Promo = "Changed"
	listed := s.ListRestaurants("", "")
	listed[0].Categories[1] = "Changed"

	r, err = s.GetRestaurant("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tradicional", "Grelhados"}, r.Categories)
	assert.Equal(t, "Desconto de 20%", *r.Promo)

	req := models.OrderRequest{RestaurantID: "1", Items: []models.OrderItem{{MenuItemID: "101", Quantity: 1}}}
	created, err := s.CreateOrder("u1", req)
	require.NoError(t, err)
	req.Items[0].Quantity = 9
	created.Items[0].Quantity = 8

	o, err := s.Order("u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestStore_ConcurrentAddressUpdates(t *testing.T) {
	s := NewStore(0)
	_, err := s.CreateUser(models.Registration{Name: "Rui", Email: "rui@example.test"}, nil)
	require.NoError(t, err)
	require.NoError(t, s.AddAddress("rui@example.test", models.UserAddress{Label: "Casa"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.UpdateAddress("rui@example.test", 0, models.UserAddress{Label: "Casa", IsDefault: true}))
		}()
		go func() {
			defer wg.Done()
			u, err := s.User("rui@example.test")
			if assert.NoError(t, err) {
				// reads the copy after the store lock is released
				assert.Equal(t, "Casa", u.Addresses[0].Label)
			}
		}()
	}
	wg.Wait()
}

func TestAuth(t *testing.T) {
	auth := NewAuth("secret", time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return now }

	token, err := auth.IssueToken("ana@example.test")
	require.NoError(t, err)

	email, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.test", email)

	now = now.Add(2 * time.Minute)
	_, err = auth.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("segredo")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "segredo"))
	assert.False(t, CheckPassword(hash, "outro"))
}
