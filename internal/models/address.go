package models

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// UserAddress is an address saved on the user's profile.
type UserAddress struct {
	Label      string `json:"label"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
}

func (a UserAddress) Address() Address {
	return Address{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
	}
}
