// Package location expõe os dados de referência de províncias, distritos e bairros.
package location

import (
	"context"
	"strconv"
	"strings"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	apperrors "github.com/diillson/retail-admin-api/pkg/errors"
	"go.uber.org/zap"
)

// Service consulta as localidades
type Service struct {
	repo   repository.LocationRepository
	logger *zap.Logger
}

// NewService cria o serviço de localidades
func NewService(repo repository.LocationRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// parseID aceita apenas inteiros positivos
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Service) internal(err error) error {
	s.logger.Error("Falha ao consultar localidades", zap.Error(err))
	return apperrors.InternalServer("", err)
}

// Provinces lista todas as províncias
func (s *Service) Provinces(ctx context.Context) ([]model.Province, error) {
	provinces, err := s.repo.ListProvinces(ctx)
	if err != nil {
		return nil, s.internal(err)
	}
	if len(provinces) == 0 {
		return nil, apperrors.NotFound("No provinces found", nil)
	}
	return provinces, nil
}

// Districts lista os distritos da província informada
func (s *Service) Districts(ctx context.Context, provinceID string) ([]model.District, error) {
	id, ok := parseID(provinceID)
	if !ok {
		return nil, apperrors.BadRequest("Invalid province ID", nil)
	}

	districts, err := s.repo.ListDistricts(ctx, id)
	if err != nil {
		return nil, s.internal(err)
	}
	if len(districts) == 0 {
		return nil, apperrors.NotFound("No districts found", nil)
	}
	return districts, nil
}

// Neighborhoods lista os bairros do distrito informado
func (s *Service) Neighborhoods(ctx context.Context, districtID string) ([]model.Neighborhood, error) {
	id, ok := parseID(districtID)
	if !ok {
		return nil, apperrors.BadRequest("Invalid district ID", nil)
	}

	neighborhoods, err := s.repo.ListNeighborhoods(ctx, id)
	if err != nil {
		return nil, s.internal(err)
	}
	if len(neighborhoods) == 0 {
		return nil, apperrors.NotFound("No neighborhoods found", nil)
	}
	return neighborhoods, nil
}
