package factories

import (
	"strings"
	"time"

	"github.com/chrisdamba/foodstore/internal/models"
	"github.com/lucsky/cuid"
)

var cities = []string{"Lisboa", "Porto", "Braga", "Coimbra", "Faro", "Aveiro"}

type UserFactory struct{}

// CreateUser returns a user with one default address. An empty email is
// replaced by a generated one.
func (uf *UserFactory) CreateUser(email string) models.User {
	name := fake.Person().Name()
	if email == "" {
		email = strings.ToLower(fake.Internet().Email())
	}
	now := time.Now().UTC()
	return models.User{
		ID:    cuid.New(),
		Name:  name,
		Email: email,
		Phone: fake.Phone().Number(),
		Addresses: []models.UserAddress{
			uf.CreateAddress("Casa", true),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (uf *UserFactory) CreateAddress(label string, isDefault bool) models.UserAddress {
	return models.UserAddress{
		Label:      label,
		Street:     fake.Address().StreetAddress(),
		City:       pick(cities),
		PostalCode: fake.Numerify("####-###"),
		IsDefault:  isDefault,
	}
}
