package catalog_test

import (
	"github.com/diillson/retail-admin-api/internal/adapter/database"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"go.uber.org/zap"
)

func databaseBrands(db *database.Database, logger *zap.Logger) repository.CatalogRepository[model.Brand] {
	return database.NewBrandRepository(db.DB(), logger)
}
