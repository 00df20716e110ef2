package customer

import (
	"context"

	"customer-registry/internal/domain/address"

	"github.com/stretchr/testify/mock"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (_m *MockCustomerRepository) FindPage(ctx context.Context, page PageRequest) (*Page, error) {
	ret := _m.Called(ctx, page)

	var r0 *Page
	if rf, ok := ret.Get(0).(func(context.Context, PageRequest) *Page); ok {
		r0 = rf(ctx, page)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Page)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, PageRequest) error); ok {
		r1 = rf(ctx, page)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) FindByID(ctx context.Context, customerID int64) (*Customer, error) {
	ret := _m.Called(ctx, customerID)

	var r0 *Customer
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Customer); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Customer)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	ret := _m.Called(ctx, customerID)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, int64) bool); ok {
		r0 = rf(ctx, customerID)
	} else {
		r0 = ret.Bool(0)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, customerID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) CreateWithAddress(ctx context.Context, cust *Customer, first *address.Address) error {
	ret := _m.Called(ctx, cust, first)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer, *address.Address) error); ok {
		r0 = rf(ctx, cust, first)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) Update(ctx context.Context, cust *Customer) error {
	ret := _m.Called(ctx, cust)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Customer) error); ok {
		r0 = rf(ctx, cust)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) DeleteWithAddresses(ctx context.Context, customerID int64) error {
	ret := _m.Called(ctx, customerID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, customerID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockCustomerRepository) Search(ctx context.Context, query string, page PageRequest) (*Page, error) {
	ret := _m.Called(ctx, query, page)

	var r0 *Page
	if rf, ok := ret.Get(0).(func(context.Context, string, PageRequest) *Page); ok {
		r0 = rf(ctx, query, page)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Page)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, PageRequest) error); ok {
		r1 = rf(ctx, query, page)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockCustomerRepository) SearchByAddress(ctx context.Context, filter AddressFilter, page PageRequest) (*Page, error) {
	ret := _m.Called(ctx, filter, page)

	var r0 *Page
	if rf, ok := ret.Get(0).(func(context.Context, AddressFilter, PageRequest) *Page); ok {
		r0 = rf(ctx, filter, page)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Page)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, AddressFilter, PageRequest) error); ok {
		r1 = rf(ctx, filter, page)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
