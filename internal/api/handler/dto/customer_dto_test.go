package dto_test

import (
	"testing"

	"customer-registry/internal/api/handler/dto"

	"github.com/stretchr/testify/assert"
)

func validAddressRequest() dto.AddressRequest {
	return dto.AddressRequest{
		Street:  "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560038",
		Country: "India",
	}
}

func validCreateRequest() dto.CreateCustomerRequest {
	return dto.CreateCustomerRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "9876543210",
		Email:     "jane@example.com",
		Addresses: []dto.AddressRequest{validAddressRequest()},
	}
}

func TestCreateCustomerRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validCreateRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("missing first name fails", func(t *testing.T) {
		req := validCreateRequest()
		req.FirstName = ""
		assert.Error(t, req.Validate())
	})

	t.Run("malformed email fails", func(t *testing.T) {
		req := validCreateRequest()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("phone must be ten digits", func(t *testing.T) {
		for _, phone := range []string{"123", "12345678901", "98765abcde", "987-654-32"} {
			req := validCreateRequest()
			req.Phone = phone
			assert.Error(t, req.Validate(), "phone %q should be rejected", phone)
		}
	})

	t.Run("no addresses fails", func(t *testing.T) {
		req := validCreateRequest()
		req.Addresses = nil
		assert.Error(t, req.Validate())

		req.Addresses = []dto.AddressRequest{}
		assert.Error(t, req.Validate())
	})

	t.Run("more than one address fails", func(t *testing.T) {
		req := validCreateRequest()
		req.Addresses = append(req.Addresses, dto.AddressRequest{
			Street: "9 Church St", City: "Bengaluru", State: "Karnataka", Pincode: "560001", Country: "India",
		})
		assert.Error(t, req.Validate())
	})

	t.Run("invalid nested address fails", func(t *testing.T) {
		req := validCreateRequest()
		req.Addresses[0].City = ""
		assert.Error(t, req.Validate())
	})
}

func TestCreateCustomerRequestToCustomer(t *testing.T) {
	req := validCreateRequest()
	req.Addresses[0].Street2 = "Indiranagar"

	cust := req.ToCustomer()

	assert.Equal(t, "Jane", cust.FirstName)
	assert.Equal(t, "jane@example.com", cust.Email)
	assert.Len(t, cust.Addresses, 1)
	assert.Equal(t, "12 MG Road", cust.Addresses[0].Street)
	assert.Equal(t, "Indiranagar", cust.Addresses[0].Street2)
	assert.Equal(t, "Bengaluru", cust.Addresses[0].City)
}

func TestUpdateCustomerRequestValidate(t *testing.T) {
	valid := dto.UpdateCustomerRequest{
		FirstName: "Jane", LastName: "Doe", Phone: "9876543210", Email: "jane@example.com",
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid
		assert.NoError(t, req.Validate())
	})

	t.Run("missing email fails", func(t *testing.T) {
		req := valid
		req.Email = ""
		assert.Error(t, req.Validate())
	})

	t.Run("short phone fails", func(t *testing.T) {
		req := valid
		req.Phone = "12345"
		assert.Error(t, req.Validate())
	})
}

func TestAddressRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validAddressRequest()
		assert.NoError(t, req.Validate())
	})

	t.Run("street2 is optional", func(t *testing.T) {
		req := validAddressRequest()
		req.Street2 = ""
		assert.NoError(t, req.Validate())
	})

	t.Run("required fields", func(t *testing.T) {
		mutations := map[string]func(*dto.AddressRequest){
			"street":  func(r *dto.AddressRequest) { r.Street = "" },
			"city":    func(r *dto.AddressRequest) { r.City = "" },
			"state":   func(r *dto.AddressRequest) { r.State = "" },
			"pincode": func(r *dto.AddressRequest) { r.Pincode = "" },
			"country": func(r *dto.AddressRequest) { r.Country = "" },
		}
		for field, mutate := range mutations {
			req := validAddressRequest()
			mutate(&req)
			assert.Error(t, req.Validate(), "missing %s should be rejected", field)
		}
	})
}
