package customer

import (
	"time"

	"customer-registry/internal/domain/address"
)

type Customer struct {
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`

	// Addresses is populated on full reads; page queries only carry
	// AddressCount.
	Addresses    []*address.Address `json:"addresses,omitempty"`
	AddressCount int64              `json:"numAddresses"`
}

func NewCustomer(firstName, lastName, phone, email string) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// SetDetails overwrites the caller-mutable customer fields. CustomerID,
// CreatedAt and the address collection are never touched by an update.
func (c *Customer) SetDetails(firstName, lastName, email, phone string) {
	c.FirstName = firstName
	c.LastName = lastName
	c.Email = email
	c.Phone = phone
}
