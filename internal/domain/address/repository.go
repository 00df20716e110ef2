package address

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("address not found")

	// ErrDuplicateAddress reports a fingerprint collision with an existing
	// row, possibly one owned by a different customer.
	ErrDuplicateAddress = errors.New("address already associated with a customer")
)

type AddressRepository interface {
	FindByCustomerID(ctx context.Context, customerID int64) ([]*Address, error)

	FindByID(ctx context.Context, addressID int64) (*Address, error)

	Create(ctx context.Context, addr *Address) error

	Update(ctx context.Context, addr *Address) error

	Delete(ctx context.Context, addressID int64) error
}
