package database

import (
	"context"
	"fmt"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogTable descreve a tabela de um recurso nomeado do catálogo
type CatalogTable struct {
	Name          string
	SearchColumns []string
	OrderColumn   string
}

// CatalogRepository implementa repository.CatalogRepository para qualquer recurso nomeado
type CatalogRepository[T any] struct {
	db     *gorm.DB
	logger *zap.Logger
	table  CatalogTable
}

// NewCatalogRepository cria o repositório genérico para a tabela informada
func NewCatalogRepository[T any](db *gorm.DB, logger *zap.Logger, table CatalogTable) *CatalogRepository[T] {
	if table.OrderColumn == "" {
		table.OrderColumn = "created_at"
	}
	return &CatalogRepository[T]{db: db, logger: logger.With(zap.String("table", table.Name)), table: table}
}

// NewBrandRepository cria o repositório de marcas
func NewBrandRepository(db *gorm.DB, logger *zap.Logger) *CatalogRepository[model.Brand] {
	return NewCatalogRepository[model.Brand](db, logger, CatalogTable{
		Name:          "brands",
		SearchColumns: []string{"name"},
		OrderColumn:   "created_at",
	})
}

// NewCategoryRepository cria o repositório de categorias
func NewCategoryRepository(db *gorm.DB, logger *zap.Logger) *CatalogRepository[model.Category] {
	return NewCatalogRepository[model.Category](db, logger, CatalogTable{
		Name:          "categories",
		SearchColumns: []string{"name"},
		OrderColumn:   "created_at",
	})
}

var (
	_ repository.CatalogRepository[model.Brand]    = (*CatalogRepository[model.Brand])(nil)
	_ repository.CatalogRepository[model.Category] = (*CatalogRepository[model.Category])(nil)
)

// FindByID busca o registro pelo identificador
func (r *CatalogRepository[T]) FindByID(ctx context.Context, id string) (entity *T, err error) {
	ctx, span := startSpan(ctx, r.spanName("FindByID"), "select", r.table.Name, attribute.String("record.id", id))
	defer func() { endSpan(span, err) }()

	var found T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&found).Error; err != nil {
		return nil, translateError(fmt.Sprintf("falha ao buscar em %s", r.table.Name), err)
	}
	return &found, nil
}

// List retorna uma página de registros e o total que satisfaz a busca
func (r *CatalogRepository[T]) List(ctx context.Context, query model.ListQuery) (items []T, total int64, err error) {
	ctx, span := startSpan(ctx, r.spanName("List"), "select", r.table.Name,
		attribute.Int("query.page", query.Page),
		attribute.Int("query.limit", query.Limit),
	)
	defer func() { endSpan(span, err) }()

	base := r.db.WithContext(ctx).Model(new(T))
	if clause, args := searchClause(r.table.SearchColumns, query.Search); clause != "" {
		base = base.Where(clause, args...)
	}

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(fmt.Sprintf("falha ao contar %s", r.table.Name), err)
	}

	if err := base.Session(&gorm.Session{}).
		Order(r.table.OrderColumn + " DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&items).Error; err != nil {
		return nil, 0, translateError(fmt.Sprintf("falha ao listar %s", r.table.Name), err)
	}

	span.SetAttributes(attribute.Int("records.count", len(items)))
	return items, total, nil
}

// Create persiste um novo registro; nome duplicado resulta em repository.ErrDuplicate
func (r *CatalogRepository[T]) Create(ctx context.Context, entity *T) (err error) {
	ctx, span := startSpan(ctx, r.spanName("Create"), "insert", r.table.Name)
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return translateError(fmt.Sprintf("falha ao criar em %s", r.table.Name), err)
	}
	return nil
}

// Update aplica os campos informados e devolve o registro atualizado
func (r *CatalogRepository[T]) Update(ctx context.Context, id string, fields map[string]interface{}) (entity *T, err error) {
	ctx, span := startSpan(ctx, r.spanName("Update"), "update", r.table.Name, attribute.String("record.id", id))
	defer func() { endSpan(span, err) }()

	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, translateError(fmt.Sprintf("falha ao atualizar em %s", r.table.Name), err)
		}
	}

	return r.FindByID(ctx, id)
}

// Delete remove o registro definitivamente e o devolve
func (r *CatalogRepository[T]) Delete(ctx context.Context, id string) (entity *T, err error) {
	ctx, span := startSpan(ctx, r.spanName("Delete"), "delete", r.table.Name, attribute.String("record.id", id))
	defer func() { endSpan(span, err) }()

	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return nil, translateError(fmt.Sprintf("falha ao remover em %s", r.table.Name), result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	r.logger.Info("Registro removido", zap.String("id", id))
	return existing, nil
}

func (r *CatalogRepository[T]) spanName(op string) string {
	return "CatalogRepository." + r.table.Name + "." + op
}
