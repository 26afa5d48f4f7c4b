package mocks

import (
	"context"

	"envlogs/internal/model"
	"envlogs/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockLookupService struct {
	mock.Mock
}

func (m *MockLookupService) Lookup(ctx context.Context, term string) (*service.LookupResult, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LookupResult), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, req service.ExportRequest) (*model.LogExport, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.LogExport), args.String(1), args.Error(2)
}

func (m *MockExportService) Get(ctx context.Context, id string) (*model.LogExport, string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.LogExport), args.String(1), args.Error(2)
}

func (m *MockExportService) List(ctx context.Context, limit, offset int) (*service.ExportListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportListResult), args.Error(1)
}
