package http

import (
	"context"
	"net/http"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LocationService é a leitura dos dados de localização
type LocationService interface {
	Provinces(ctx context.Context) ([]model.Province, error)
	Districts(ctx context.Context, provinceID string) ([]model.District, error)
	Neighborhoods(ctx context.Context, districtID string) ([]model.Neighborhood, error)
}

// LocationHandler implementa as rotas de províncias, distritos e bairros
type LocationHandler struct {
	locations LocationService
	logger    *zap.Logger
}

func NewLocationHandler(locations LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{locations: locations, logger: logger}
}

func (h *LocationHandler) Provinces(c *gin.Context) {
	provinces, err := h.locations.Provinces(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, provinces, "Provinces fetched successfully")
}

func (h *LocationHandler) Districts(c *gin.Context) {
	districts, err := h.locations.Districts(c.Request.Context(), c.Param("provinceId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, districts, "Districts fetched successfully")
}

func (h *LocationHandler) Neighborhoods(c *gin.Context) {
	neighborhoods, err := h.locations.Neighborhoods(c.Request.Context(), c.Param("districtId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, neighborhoods, "Neighborhoods fetched successfully")
}
