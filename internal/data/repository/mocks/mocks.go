// Package mocks holds testify mocks of the repository interfaces.
package mocks

import "github.com/stretchr/testify/mock"

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func ptr[T any](ret mock.Arguments, i int) *T {
	v, _ := ret.Get(i).(*T)
	return v
}

func slice[T any](ret mock.Arguments, i int) []*T {
	v, _ := ret.Get(i).([]*T)
	return v
}

func int64At(ret mock.Arguments, i int) int64 {
	v, _ := ret.Get(i).(int64)
	return v
}
