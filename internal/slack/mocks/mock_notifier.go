package mocks

import (
	"context"

	"envlogs/internal/slack"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Post(ctx context.Context, msg slack.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
