package address

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAddressRepository struct {
	mock.Mock
}

func (_m *MockAddressRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*Address, error) {
	ret := _m.Called(ctx, customerID)

	var r0 []*Address
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Address); ok {
		r0 = rf(ctx, customerID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Address)
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

func (_m *MockAddressRepository) FindByID(ctx context.Context, addressID int64) (*Address, error) {
	ret := _m.Called(ctx, addressID)

	var r0 *Address
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Address); ok {
		r0 = rf(ctx, addressID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Address)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, addressID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockAddressRepository) Create(ctx context.Context, addr *Address) error {
	ret := _m.Called(ctx, addr)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Address) error); ok {
		r0 = rf(ctx, addr)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockAddressRepository) Update(ctx context.Context, addr *Address) error {
	ret := _m.Called(ctx, addr)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Address) error); ok {
		r0 = rf(ctx, addr)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockAddressRepository) Delete(ctx context.Context, addressID int64) error {
	ret := _m.Called(ctx, addressID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, addressID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

type MockOwnerResolver struct {
	mock.Mock
}

func (_m *MockOwnerResolver) Exists(ctx context.Context, customerID int64) (bool, error) {
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
