package mocks

import (
	"context"

	"envlogs/internal/model"
	"envlogs/internal/zeronet"
	"github.com/stretchr/testify/mock"
)

// MockDirectory mocks the multi-region directory the services depend on.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) SearchAll(ctx context.Context, name string) []model.Environment {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]model.Environment)
}

func (m *MockDirectory) ClientFor(region string) (zeronet.Client, bool) {
	args := m.Called(region)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(zeronet.Client), args.Bool(1)
}
