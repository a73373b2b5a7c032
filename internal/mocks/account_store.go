package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	uuid "github.com/google/uuid"

	model "github.com/ddrozdov/gatehouse-server/internal/model"
)

// AccountStore mocks model.AccountStore for tests.
type AccountStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, account
func (_m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	ret := _m.Called(ctx, account)

	var r0 model.Account
	if rf, ok := ret.Get(0).(func(context.Context, model.Account) model.Account); ok {
		r0 = rf(ctx, account)
	} else {
		r0 = ret.Get(0).(model.Account)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, model.Account) error); ok {
		r1 = rf(ctx, account)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	ret := _m.Called(ctx, id)

	var r0 model.Account
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID) model.Account); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(model.Account)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update provides a mock function with given fields: ctx, id, update
func (_m *AccountStore) Update(ctx context.Context, id uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	ret := _m.Called(ctx, id, update)

	var r0 model.Account
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, model.AccountUpdate) model.Account); ok {
		r0 = rf(ctx, id, update)
	} else {
		r0 = ret.Get(0).(model.Account)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, model.AccountUpdate) error); ok {
		r1 = rf(ctx, id, update)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewAccountStore interface {
	mock.TestingT
	Cleanup(func())
}

// NewAccountStore creates a new instance of AccountStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAccountStore(t mockConstructorTestingTNewAccountStore) *AccountStore {
	m := &AccountStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
