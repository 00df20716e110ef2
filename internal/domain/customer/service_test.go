package customer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"customer-registry/internal/domain/address"
	"customer-registry/internal/domain/customer"
	"customer-registry/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAddressRepo satisfies address.AddressRepository for the nested
// address loads the customer service performs.
type MockAddressRepo struct {
	mock.Mock
}

func (_m *MockAddressRepo) FindByCustomerID(ctx context.Context, customerID int64) ([]*address.Address, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*address.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*address.Address)
	}
	return r0, ret.Error(1)
}

func (_m *MockAddressRepo) FindByID(ctx context.Context, addressID int64) (*address.Address, error) {
	ret := _m.Called(ctx, addressID)

	var r0 *address.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*address.Address)
	}
	return r0, ret.Error(1)
}

func (_m *MockAddressRepo) Create(ctx context.Context, addr *address.Address) error {
	return _m.Called(ctx, addr).Error(0)
}

func (_m *MockAddressRepo) Update(ctx context.Context, addr *address.Address) error {
	return _m.Called(ctx, addr).Error(0)
}

func (_m *MockAddressRepo) Delete(ctx context.Context, addressID int64) error {
	return _m.Called(ctx, addressID).Error(0)
}

func setupTest() (*customer.MockCustomerRepository, *MockAddressRepo, customer.CustomerService) {
	mockRepo := new(customer.MockCustomerRepository)
	mockAddresses := new(MockAddressRepo)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := customer.NewCustomerService(mockRepo, mockAddresses, logger)
	return mockRepo, mockAddresses, service
}

func newCustomerWithAddress() *customer.Customer {
	cust := customer.NewCustomer("Jane", "Doe", "9876543210", "jane@example.com")
	cust.Addresses = []*address.Address{
		{Street: "12 MG Road", City: "Bengaluru", State: "Karnataka", Pincode: "560038", Country: "India"},
	}
	return cust
}

func TestCustomerService_ListCustomers(t *testing.T) {
	ctx := context.Background()

	t.Run("Success with normalized paging", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		expected := &customer.Page{
			Items: []*customer.Customer{{CustomerID: 1, FirstName: "Jane"}},
			Page:  0, Size: 10, TotalElements: 1,
		}
		normalized := customer.PageRequest{Page: 0, Size: 10, SortBy: "firstName", SortDir: "asc"}
		mockRepo.On("FindPage", ctx, normalized).Return(expected, nil).Once()

		page, err := service.ListCustomers(ctx, customer.PageRequest{Page: -1, SortBy: "bogus"})

		assert.NoError(t, err)
		assert.Equal(t, expected, page)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindPage", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

		page, err := service.ListCustomers(ctx, customer.PageRequest{})

		assert.Error(t, err)
		assert.Nil(t, page)
		mockRepo.AssertExpectations(t)
	})
}

func TestCustomerService_GetCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success attaches addresses", func(t *testing.T) {
		mockRepo, mockAddresses, service := setupTest()
		cust := &customer.Customer{CustomerID: 1, FirstName: "Jane"}
		owned := []*address.Address{{AddressID: 2, CustomerID: 1}, {AddressID: 3, CustomerID: 1}}
		mockRepo.On("FindByID", ctx, int64(1)).Return(cust, nil).Once()
		mockAddresses.On("FindByCustomerID", ctx, int64(1)).Return(owned, nil).Once()

		result, err := service.GetCustomer(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, owned, result.Addresses)
		assert.Equal(t, int64(2), result.AddressCount)
		mockRepo.AssertExpectations(t)
		mockAddresses.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo, mockAddresses, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(99)).Return(nil, customer.ErrNotFound).Once()

		result, err := service.GetCustomer(ctx, 99)

		assert.ErrorIs(t, err, customer.ErrNotFound)
		assert.Nil(t, result)
		mockAddresses.AssertNotCalled(t, "FindByCustomerID")
	})

	t.Run("Address load failure surfaces", func(t *testing.T) {
		mockRepo, mockAddresses, service := setupTest()
		cust := &customer.Customer{CustomerID: 1}
		mockRepo.On("FindByID", ctx, int64(1)).Return(cust, nil).Once()
		mockAddresses.On("FindByCustomerID", ctx, int64(1)).Return(nil, errors.New("db down")).Once()

		result, err := service.GetCustomer(ctx, 1)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := newCustomerWithAddress()
		mockRepo.On("CreateWithAddress", ctx, cust, cust.Addresses[0]).Run(func(args mock.Arguments) {
			created := args.Get(1).(*customer.Customer)
			first := args.Get(2).(*address.Address)
			created.CustomerID = 1
			first.AddressID = 10
			first.CustomerID = 1
		}).Return(nil).Once()

		result, err := service.CreateCustomer(ctx, cust)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), result.CustomerID)
		assert.Equal(t, int64(1), result.AddressCount)
		assert.Len(t, result.Addresses, 1)
		assert.Equal(t, int64(10), result.Addresses[0].AddressID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Trims whitespace", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := newCustomerWithAddress()
		cust.FirstName = "  Jane "
		cust.Email = " jane@example.com  "
		mockRepo.On("CreateWithAddress", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.FirstName == "Jane" && c.Email == "jane@example.com"
		}), mock.Anything).Return(nil).Once()

		_, err := service.CreateCustomer(ctx, cust)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rejects nil customer", func(t *testing.T) {
		mockRepo, _, service := setupTest()

		result, err := service.CreateCustomer(ctx, nil)

		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "CreateWithAddress")
	})

	t.Run("Rejects missing address", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := customer.NewCustomer("Jane", "Doe", "9876543210", "jane@example.com")

		result, err := service.CreateCustomer(ctx, cust)

		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "CreateWithAddress")
	})

	t.Run("Rejects multiple addresses instead of dropping extras", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := newCustomerWithAddress()
		cust.Addresses = append(cust.Addresses, &address.Address{
			Street: "9 Church St", City: "Bengaluru", State: "Karnataka", Pincode: "560001", Country: "India",
		})

		result, err := service.CreateCustomer(ctx, cust)

		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "CreateWithAddress")
	})

	t.Run("Duplicate email passes through", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := newCustomerWithAddress()
		mockRepo.On("CreateWithAddress", ctx, mock.Anything, mock.Anything).Return(customer.ErrDuplicateEmail).Once()

		result, err := service.CreateCustomer(ctx, cust)

		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
		assert.Nil(t, result)
	})

	t.Run("Duplicate phone passes through", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := newCustomerWithAddress()
		mockRepo.On("CreateWithAddress", ctx, mock.Anything, mock.Anything).Return(customer.ErrDuplicatePhone).Once()

		_, err := service.CreateCustomer(ctx, cust)

		assert.ErrorIs(t, err, customer.ErrDuplicatePhone)
	})

	t.Run("Duplicate address passes through", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		cust := newCustomerWithAddress()
		mockRepo.On("CreateWithAddress", ctx, mock.Anything, mock.Anything).Return(address.ErrDuplicateAddress).Once()

		_, err := service.CreateCustomer(ctx, cust)

		assert.ErrorIs(t, err, address.ErrDuplicateAddress)
	})
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success overwrites details only", func(t *testing.T) {
		mockRepo, mockAddresses, service := setupTest()
		existing := &customer.Customer{CustomerID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "9876543210"}
		mockRepo.On("FindByID", ctx, int64(1)).Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.MatchedBy(func(c *customer.Customer) bool {
			return c.CustomerID == 1 && c.FirstName == "John" && c.Email == "john@example.com"
		})).Return(nil).Once()
		mockAddresses.On("FindByCustomerID", ctx, int64(1)).Return([]*address.Address{}, nil).Once()

		result, err := service.UpdateCustomer(ctx, 1, " John ", "Smith", " john@example.com ", "1234567890")

		assert.NoError(t, err)
		assert.Equal(t, "John", result.FirstName)
		assert.Equal(t, "Smith", result.LastName)
		assert.Equal(t, "john@example.com", result.Email)
		assert.Equal(t, "1234567890", result.Phone)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("FindByID", ctx, int64(99)).Return(nil, customer.ErrNotFound).Once()

		result, err := service.UpdateCustomer(ctx, 99, "John", "Smith", "john@example.com", "1234567890")

		assert.ErrorIs(t, err, customer.ErrNotFound)
		assert.Nil(t, result)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Duplicate email on update", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		existing := &customer.Customer{CustomerID: 1}
		mockRepo.On("FindByID", ctx, int64(1)).Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mock.Anything).Return(customer.ErrDuplicateEmail).Once()

		result, err := service.UpdateCustomer(ctx, 1, "John", "Smith", "taken@example.com", "1234567890")

		assert.ErrorIs(t, err, customer.ErrDuplicateEmail)
		assert.Nil(t, result)
	})
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("DeleteWithAddresses", ctx, int64(1)).Return(nil).Once()

		err := service.DeleteCustomer(ctx, 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("DeleteWithAddresses", ctx, int64(99)).Return(customer.ErrNotFound).Once()

		err := service.DeleteCustomer(ctx, 99)

		assert.ErrorIs(t, err, customer.ErrNotFound)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("DeleteWithAddresses", ctx, int64(1)).Return(errors.New("db down")).Once()

		err := service.DeleteCustomer(ctx, 1)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, customer.ErrNotFound)
	})
}

func TestCustomerService_SearchCustomers(t *testing.T) {
	ctx := context.Background()

	t.Run("Trims query and normalizes paging", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		expected := &customer.Page{Items: []*customer.Customer{}, Size: 10}
		normalized := customer.PageRequest{Page: 0, Size: 10, SortBy: "firstName", SortDir: "asc"}
		mockRepo.On("Search", ctx, "jane", normalized).Return(expected, nil).Once()

		page, err := service.SearchCustomers(ctx, "  jane  ", customer.PageRequest{})

		assert.NoError(t, err)
		assert.Equal(t, expected, page)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repository error", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		mockRepo.On("Search", ctx, "jane", mock.Anything).Return(nil, errors.New("db down")).Once()

		page, err := service.SearchCustomers(ctx, "jane", customer.PageRequest{})

		assert.Error(t, err)
		assert.Nil(t, page)
	})
}

func TestCustomerService_SearchByAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("Trims filter fields", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		expected := &customer.Page{Items: []*customer.Customer{{CustomerID: 1}}, Size: 10, TotalElements: 1}
		trimmed := customer.AddressFilter{City: "Bengaluru", State: "Karnataka", Pincode: "560038"}
		mockRepo.On("SearchByAddress", ctx, trimmed, mock.Anything).Return(expected, nil).Once()

		page, err := service.SearchByAddress(ctx, customer.AddressFilter{
			City: " Bengaluru ", State: "Karnataka ", Pincode: " 560038",
		}, customer.PageRequest{})

		assert.NoError(t, err)
		assert.Equal(t, expected, page)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty filter is allowed", func(t *testing.T) {
		mockRepo, _, service := setupTest()
		expected := &customer.Page{Items: []*customer.Customer{}, Size: 10}
		mockRepo.On("SearchByAddress", ctx, customer.AddressFilter{}, mock.Anything).Return(expected, nil).Once()

		page, err := service.SearchByAddress(ctx, customer.AddressFilter{}, customer.PageRequest{})

		assert.NoError(t, err)
		assert.Equal(t, expected, page)
	})
}
