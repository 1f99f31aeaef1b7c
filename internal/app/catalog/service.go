// Package catalog implementa uma única vez o CRUD dos recursos nomeados
// (marcas e categorias), parametrizado pelo tipo da entidade.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"github.com/diillson/retail-admin-api/internal/validation"
	apperrors "github.com/diillson/retail-admin-api/pkg/errors"
	"go.uber.org/zap"
)

// Entity é o que o serviço precisa de uma entidade do catálogo
type Entity[T any] interface {
	*T
	GetID() string
	SetName(name string)
}

// NameInput é o corpo de criação e atualização
type NameInput struct {
	Name string `json:"name"`
}

// Service é o serviço genérico de um recurso do catálogo
type Service[T any, PT Entity[T]] struct {
	repo     repository.CatalogRepository[T]
	resource Resource
	logger   *zap.Logger
}

// NewService cria o serviço para o recurso informado
func NewService[T any, PT Entity[T]](repo repository.CatalogRepository[T], resource Resource, logger *zap.Logger) *Service[T, PT] {
	return &Service[T, PT]{
		repo:     repo,
		resource: resource,
		logger:   logger.With(zap.String("resource", resource.Plural)),
	}
}

// BrandService é o serviço de marcas
type BrandService = Service[model.Brand, *model.Brand]

// CategoryService é o serviço de categorias
type CategoryService = Service[model.Category, *model.Category]

// NewBrandService cria o serviço de marcas
func NewBrandService(repo repository.CatalogRepository[model.Brand], logger *zap.Logger) *BrandService {
	return NewService[model.Brand, *model.Brand](repo, Brands, logger)
}

// NewCategoryService cria o serviço de categorias
func NewCategoryService(repo repository.CatalogRepository[model.Category], logger *zap.Logger) *CategoryService {
	return NewService[model.Category, *model.Category](repo, Categories, logger)
}

// Resource retorna a descrição do recurso atendido
func (s *Service[T, PT]) Resource() Resource {
	return s.resource
}

func (s *Service[T, PT]) validateName(in *NameInput) error {
	in.Name = strings.TrimSpace(in.Name)
	msg := validation.Var(in.Name, fmt.Sprintf("required,max=%d", s.resource.NameMaxLen), map[string]string{
		"required": s.resource.nameRequired(),
		"max":      s.resource.nameTooLong(),
	})
	if msg != "" {
		return apperrors.BadRequest(msg, nil)
	}
	return nil
}

// mapError converte os erros do repositório nos erros da API
func (s *Service[T, PT]) mapError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(s.resource.notFound(), err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.BadRequest(s.resource.duplicate(), err)
	default:
		s.logger.Error("Falha no repositório", zap.Error(err))
		return apperrors.InternalServer("", err)
	}
}

// Create valida o nome e cria o registro
func (s *Service[T, PT]) Create(ctx context.Context, in *NameInput) (*T, error) {
	if err := s.validateName(in); err != nil {
		return nil, err
	}

	entity := PT(new(T))
	entity.SetName(in.Name)

	if err := s.repo.Create(ctx, (*T)(entity)); err != nil {
		return nil, s.mapError(err)
	}

	s.logger.Info("Registro criado", zap.String("id", entity.GetID()))
	return (*T)(entity), nil
}

// Get busca um registro pelo identificador
func (s *Service[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.BadRequest(s.resource.idRequired(), nil)
	}

	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return entity, nil
}

// List retorna uma página de registros; página vazia é NotFound
func (s *Service[T, PT]) List(ctx context.Context, query model.ListQuery) ([]T, model.Pagination, error) {
	query = query.WithDefaults(s.resource.DefaultLimit)

	items, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, model.Pagination{}, s.mapError(err)
	}
	if len(items) == 0 {
		return nil, model.Pagination{}, apperrors.NotFound(s.resource.noneFound(), nil)
	}

	return items, model.NewPagination(total, query.Page, query.Limit), nil
}

// Update valida o nome e o aplica ao registro existente
func (s *Service[T, PT]) Update(ctx context.Context, id string, in *NameInput) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.BadRequest(s.resource.idRequired(), nil)
	}
	if err := s.validateName(in); err != nil {
		return nil, err
	}

	entity, err := s.repo.Update(ctx, id, map[string]interface{}{"name": in.Name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return entity, nil
}

// Delete remove o registro definitivamente e o devolve
func (s *Service[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.BadRequest(s.resource.idRequired(), nil)
	}

	entity, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.logger.Info("Registro removido", zap.String("id", id))
	return entity, nil
}
