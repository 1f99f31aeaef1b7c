package http

import (
	"context"
	"net/http"

	"github.com/diillson/retail-admin-api/internal/app/catalog"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogService é o serviço genérico de marcas e categorias visto pelo handler
type CatalogService[T any] interface {
	Resource() catalog.Resource
	Create(ctx context.Context, in *catalog.NameInput) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, query model.ListQuery) ([]T, model.Pagination, error)
	Update(ctx context.Context, id string, in *catalog.NameInput) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// CatalogHandler implementa o CRUD HTTP de um recurso do catálogo
type CatalogHandler[T any] struct {
	service  CatalogService[T]
	resource catalog.Resource
	logger   *zap.Logger
}

// NewCatalogHandler cria o handler para o serviço informado
func NewCatalogHandler[T any](service CatalogService[T], logger *zap.Logger) *CatalogHandler[T] {
	resource := service.Resource()
	return &CatalogHandler[T]{
		service:  service,
		resource: resource,
		logger:   logger.With(zap.String("resource", resource.Plural)),
	}
}

// RegisterRoutes monta /<plural> e /<plural>/:id; leitura e escrita têm gates distintos
func (h *CatalogHandler[T]) RegisterRoutes(router gin.IRouter, authenticate, readGate, writeGate gin.HandlerFunc) {
	base := "/" + h.resource.Plural

	router.GET(base, authenticate, readGate, h.List)
	router.GET(base+"/:id", authenticate, readGate, h.Get)
	router.POST(base, authenticate, writeGate, h.Create)
	router.PUT(base+"/:id", authenticate, writeGate, h.Update)
	router.DELETE(base+"/:id", authenticate, writeGate, h.Delete)
}

// Create cria um registro
func (h *CatalogHandler[T]) Create(c *gin.Context) {
	var in catalog.NameInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	entity, err := h.service.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, entity, h.resource.Message("created"))
}

// Get devolve um registro pelo id
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	entity, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, entity, h.resource.Message("fetched"))
}

// List pagina os registros com busca opcional
func (h *CatalogHandler[T]) List(c *gin.Context) {
	items, pagination, err := h.service.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondList(c, items, pagination, h.resource.ListMessage())
}

// Update renomeia um registro
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	var in catalog.NameInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	entity, err := h.service.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, entity, h.resource.Message("updated"))
}

// Delete remove um registro
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	entity, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, entity, h.resource.Message("deleted"))
}
