package mocks

import (
	"context"

	"envlogs/internal/model"
	"envlogs/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockExportRepository struct {
	mock.Mock
}

func (m *MockExportRepository) Create(ctx context.Context, export *model.LogExport) (*model.LogExport, error) {
	args := m.Called(ctx, export)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LogExport), args.Error(1)
}

func (m *MockExportRepository) FindByID(ctx context.Context, id string) (*model.LogExport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LogExport), args.Error(1)
}

func (m *MockExportRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.LogExport], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.LogExport]), args.Error(1)
}

func (m *MockExportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
