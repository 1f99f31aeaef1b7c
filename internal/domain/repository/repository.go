package repository

import (
	"context"
	"errors"

	"github.com/diillson/retail-admin-api/internal/domain/model"
)

var (
	// ErrNotFound indica que o registro não existe
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indica violação de restrição de unicidade no armazenamento
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository define o acesso a contas de usuário.
// Apenas FindByEmail devolve o hash da senha; as demais leituras o omitem.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, query model.ListQuery) ([]model.User, int64, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, id string) (*model.User, error)
}

// CatalogRepository é o repositório genérico de recursos nomeados (marcas, categorias)
type CatalogRepository[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, query model.ListQuery) ([]T, int64, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// LocationRepository expõe os dados de referência de localização
type LocationRepository interface {
	ListProvinces(ctx context.Context) ([]model.Province, error)
	ListDistricts(ctx context.Context, provinceID int) ([]model.District, error)
	ListNeighborhoods(ctx context.Context, districtID int) ([]model.Neighborhood, error)
}
