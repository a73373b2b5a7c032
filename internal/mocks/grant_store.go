package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"
	uuid "github.com/google/uuid"

	model "github.com/ddrozdov/gatehouse-server/internal/model"
)

// GrantStore mocks model.GrantStore for tests.
type GrantStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, grant
func (_m *GrantStore) Create(ctx context.Context, grant model.Grant) error {
	ret := _m.Called(ctx, grant)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Grant) error); ok {
		r0 = rf(ctx, grant)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Delete provides a mock function with given fields: ctx, subjectID, scope, capability
func (_m *GrantStore) Delete(ctx context.Context, subjectID uuid.UUID, scope string, capability string) error {
	ret := _m.Called(ctx, subjectID, scope, capability)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string, string) error); ok {
		r0 = rf(ctx, subjectID, scope, capability)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Exists provides a mock function with given fields: ctx, subjectID, scopes, capability
func (_m *GrantStore) Exists(ctx context.Context, subjectID uuid.UUID, scopes []string, capability string) (bool, error) {
	ret := _m.Called(ctx, subjectID, scopes, capability)

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, []string, string) bool); ok {
		r0 = rf(ctx, subjectID, scopes, capability)
	} else {
		r0 = ret.Get(0).(bool)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, []string, string) error); ok {
		r1 = rf(ctx, subjectID, scopes, capability)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListBySubject provides a mock function with given fields: ctx, subjectID, scopeFilter
func (_m *GrantStore) ListBySubject(ctx context.Context, subjectID uuid.UUID, scopeFilter string) ([]model.Grant, error) {
	ret := _m.Called(ctx, subjectID, scopeFilter)

	var r0 []model.Grant
	if rf, ok := ret.Get(0).(func(context.Context, uuid.UUID, string) []model.Grant); ok {
		r0 = rf(ctx, subjectID, scopeFilter)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Grant)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uuid.UUID, string) error); ok {
		r1 = rf(ctx, subjectID, scopeFilter)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewGrantStore interface {
	mock.TestingT
	Cleanup(func())
}

// NewGrantStore creates a new instance of GrantStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewGrantStore(t mockConstructorTestingTNewGrantStore) *GrantStore {
	m := &GrantStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
