package mocks

import (
	"context"
	"encoding/json"

	"envlogs/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) SearchEnvironments(ctx context.Context, name string) ([]model.Environment, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Environment), args.Error(1)
}

func (m *MockClient) ListDeployments(ctx context.Context, envID string) ([]model.Deployment, error) {
	args := m.Called(ctx, envID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Deployment), args.Error(1)
}

func (m *MockClient) FetchLogs(ctx context.Context, envID, deploymentID string) ([]json.RawMessage, error) {
	args := m.Called(ctx, envID, deploymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}
