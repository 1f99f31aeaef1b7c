package database

import (
	"context"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// LocationRepository lê os dados de referência de províncias, distritos e bairros
type LocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository cria o repositório de localidades
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

var _ repository.LocationRepository = (*LocationRepository)(nil)

// ListProvinces retorna todas as províncias
func (r *LocationRepository) ListProvinces(ctx context.Context) (provinces []model.Province, err error) {
	ctx, span := startSpan(ctx, "LocationRepository.ListProvinces", "select", "provinces")
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Order("id").Find(&provinces).Error; err != nil {
		return nil, translateError("falha ao listar províncias", err)
	}
	return provinces, nil
}

// ListDistricts retorna os distritos de uma província
func (r *LocationRepository) ListDistricts(ctx context.Context, provinceID int) (districts []model.District, err error) {
	ctx, span := startSpan(ctx, "LocationRepository.ListDistricts", "select", "districts",
		attribute.Int("province.id", provinceID))
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Where("province_id = ?", provinceID).Order("id").Find(&districts).Error; err != nil {
		return nil, translateError("falha ao listar distritos", err)
	}
	return districts, nil
}

// ListNeighborhoods retorna os bairros de um distrito
func (r *LocationRepository) ListNeighborhoods(ctx context.Context, districtID int) (neighborhoods []model.Neighborhood, err error) {
	ctx, span := startSpan(ctx, "LocationRepository.ListNeighborhoods", "select", "neighborhoods",
		attribute.Int("district.id", districtID))
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Where("district_id = ?", districtID).Order("id").Find(&neighborhoods).Error; err != nil {
		return nil, translateError("falha ao listar bairros", err)
	}
	return neighborhoods, nil
}
