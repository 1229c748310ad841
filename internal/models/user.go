package models

import (
	"time"
)

type User struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Addresses []UserAddress `json:"addresses"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// DefaultAddress returns the address flagged as default, else the first one.
func (u *User) DefaultAddress() (UserAddress, bool) {
	if u == nil || len(u.Addresses) == 0 {
		return UserAddress{}, false
	}
	for _, a := range u.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return u.Addresses[0], true
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
