package mocks

import "github.com/FlameF91/QoE-Linux-Net2/pkg/executor"
import "github.com/stretchr/testify/mock"

// Executor mock
type Executor struct {
	mock.Mock
}

// Execute provides a mock function with given fields: argv
func (_m *Executor) Execute(argv []string) (executor.Result, error) {
	ret := _m.Called(argv)

	var r0 executor.Result
	if rf, ok := ret.Get(0).(func([]string) executor.Result); ok {
		r0 = rf(argv)
	} else {
		r0 = ret.Get(0).(executor.Result)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func([]string) error); ok {
		r1 = rf(argv)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
