package dto

import (
	"fmt"
	"time"

	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
)

type CreateCustomerRequest struct {
	FirstName string           `json:"firstName" validate:"required"`
	LastName  string           `json:"lastName" validate:"required"`
	Phone     string           `json:"phone" validate:"required"`
	Email     string           `json:"email" validate:"required,email"`
	Addresses []AddressRequest `json:"addresses" validate:"required,len=1,dive"`
}

func (r *CreateCustomerRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("customer payload invalid: %w", err)
	}
	if !phonePattern.MatchString(r.Phone) {
		return fmt.Errorf("phone must be exactly 10 digits")
	}
	return nil
}

// ToCustomer builds the domain object with the single submitted address
// attached, ready for the atomic customer-plus-address insert. Validate
// guarantees exactly one address before this runs.
func (r *CreateCustomerRequest) ToCustomer() *customer.Customer {
	cust := customer.NewCustomer(r.FirstName, r.LastName, r.Phone, r.Email)
	addresses := make([]*address.Address, len(r.Addresses))
	for i, a := range r.Addresses {
		addresses[i] = &address.Address{
			Street:  a.Street,
			Street2: a.Street2,
			City:    a.City,
			State:   a.State,
			Pincode: a.Pincode,
			Country: a.Country,
		}
	}
	cust.Addresses = addresses
	return cust
}

type UpdateCustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

func (r *UpdateCustomerRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("customer payload invalid: %w", err)
	}
	if !phonePattern.MatchString(r.Phone) {
		return fmt.Errorf("phone must be exactly 10 digits")
	}
	return nil
}

// CustomerResponse is the full projection, nested addresses included.
type CustomerResponse struct {
	BaseResponse
	ID           int64             `json:"id"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	CreatedAt    time.Time         `json:"createdAt"`
	NumAddresses int64             `json:"numAddresses"`
	Addresses    []AddressResponse `json:"addresses"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		ID:           cust.CustomerID,
		FirstName:    cust.FirstName,
		LastName:     cust.LastName,
		Email:        cust.Email,
		Phone:        cust.Phone,
		CreatedAt:    cust.CreatedAt,
		NumAddresses: cust.AddressCount,
		Addresses:    NewAddressListResponse(cust.Addresses),
	}
}

// CustomerSummaryResponse is the page-level projection: address count only,
// no nested address list.
type CustomerSummaryResponse struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	NumAddresses int64     `json:"numAddresses"`
}

func NewCustomerSummaryResponse(cust *customer.Customer) CustomerSummaryResponse {
	if cust == nil {
		return CustomerSummaryResponse{}
	}
	return CustomerSummaryResponse{
		ID:           cust.CustomerID,
		FirstName:    cust.FirstName,
		LastName:     cust.LastName,
		Email:        cust.Email,
		Phone:        cust.Phone,
		CreatedAt:    cust.CreatedAt,
		NumAddresses: cust.AddressCount,
	}
}

type CustomerPageResponse struct {
	Content       []CustomerSummaryResponse `json:"content"`
	Page          int                       `json:"page"`
	Size          int                       `json:"size"`
	TotalElements int64                     `json:"totalElements"`
	TotalPages    int                       `json:"totalPages"`
}

func NewCustomerPageResponse(page *customer.Page) CustomerPageResponse {
	if page == nil {
		return CustomerPageResponse{Content: []CustomerSummaryResponse{}}
	}
	content := make([]CustomerSummaryResponse, len(page.Items))
	for i, cust := range page.Items {
		content[i] = NewCustomerSummaryResponse(cust)
	}
	return CustomerPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
	}
}
