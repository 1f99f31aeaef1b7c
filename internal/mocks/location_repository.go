package mocks

import (
	"context"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockLocationRepository é um mock para o repository.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) ListProvinces(ctx context.Context) ([]model.Province, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Province), args.Error(1)
}

func (m *MockLocationRepository) ListDistricts(ctx context.Context, provinceID int) ([]model.District, error) {
	args := m.Called(ctx, provinceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.District), args.Error(1)
}

func (m *MockLocationRepository) ListNeighborhoods(ctx context.Context, districtID int) ([]model.Neighborhood, error) {
	args := m.Called(ctx, districtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Neighborhood), args.Error(1)
}
