package dto

import (
	"fmt"
	"regexp"

	"customer-registry/internal/domain/address"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// AddressRequest is the payload for creating or updating an address. The
// fingerprint is never accepted from the caller; it is recomputed
// server-side on every write.
type AddressRequest struct {
	Street  string `json:"street" validate:"required"`
	Street2 string `json:"street2"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (r *AddressRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("address payload invalid: %w", err)
	}
	return nil
}

func (r *AddressRequest) Fields() address.Fields {
	return address.Fields{
		Street:  r.Street,
		Street2: r.Street2,
		City:    r.City,
		State:   r.State,
		Pincode: r.Pincode,
		Country: r.Country,
	}
}

type AddressResponse struct {
	BaseResponse
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pincode    string `json:"pincode"`
	Country    string `json:"country"`
	CustomerID int64  `json:"customerId"`
}

func NewAddressResponse(addr *address.Address) AddressResponse {
	if addr == nil {
		return AddressResponse{}
	}
	return AddressResponse{
		ID:         addr.AddressID,
		Street:     addr.Street,
		Street2:    addr.Street2,
		City:       addr.City,
		State:      addr.State,
		Pincode:    addr.Pincode,
		Country:    addr.Country,
		CustomerID: addr.CustomerID,
	}
}

func NewAddressListResponse(addresses []*address.Address) []AddressResponse {
	resp := make([]AddressResponse, len(addresses))
	for i, addr := range addresses {
		resp[i] = NewAddressResponse(addr)
	}
	return resp
}
