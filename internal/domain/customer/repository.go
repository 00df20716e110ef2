package customer

import (
	"context"
	"errors"

	"customer-registry/internal/domain/address"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrDuplicateEmail = errors.New("email address already in use")

	ErrDuplicatePhone = errors.New("phone number already in use")
)

type CustomerRepository interface {
	FindPage(ctx context.Context, page PageRequest) (*Page, error)

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	Exists(ctx context.Context, customerID int64) (bool, error)

	// CreateWithAddress inserts the customer and its first address as one
	// atomic unit. The address is linked to the generated customer id and
	// fingerprinted inside the same transaction.
	CreateWithAddress(ctx context.Context, cust *Customer, first *address.Address) error

	Update(ctx context.Context, cust *Customer) error

	// DeleteWithAddresses removes the customer and every owned address in
	// one transaction.
	DeleteWithAddresses(ctx context.Context, customerID int64) error

	Search(ctx context.Context, query string, page PageRequest) (*Page, error)

	SearchByAddress(ctx context.Context, filter AddressFilter, page PageRequest) (*Page, error)
}
