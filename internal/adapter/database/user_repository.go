package database

import (
	"context"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const usersTable = "users"

var userSearchColumns = []string{"first_name", "last_name", "email"}

// UserRepository implementa repository.UserRepository.
// Toda leitura, exceto FindByEmail, omite a coluna password.
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUserRepository cria um novo repositório de usuários
func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

var _ repository.UserRepository = (*UserRepository)(nil)

// public aplica a projeção sem o hash da senha
func (r *UserRepository) public(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Omit("password")
}

// FindByID busca um usuário pelo identificador
func (r *UserRepository) FindByID(ctx context.Context, id string) (user *model.User, err error) {
	ctx, span := startSpan(ctx, "UserRepository.FindByID", "select", usersTable, attribute.String("user.id", id))
	defer func() { endSpan(span, err) }()

	var found model.User
	if err := r.public(ctx).Where("id = ?", id).First(&found).Error; err != nil {
		return nil, translateError("falha ao buscar usuário", err)
	}
	return &found, nil
}

// FindByEmail busca um usuário pelo email, sem diferenciar maiúsculas; inclui o hash da senha
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user *model.User, err error) {
	ctx, span := startSpan(ctx, "UserRepository.FindByEmail", "select", usersTable)
	defer func() { endSpan(span, err) }()

	var found model.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&found).Error; err != nil {
		return nil, translateError("falha ao buscar usuário por email", err)
	}
	return &found, nil
}

// List retorna uma página de usuários e o total que satisfaz a busca
func (r *UserRepository) List(ctx context.Context, query model.ListQuery) (users []model.User, total int64, err error) {
	ctx, span := startSpan(ctx, "UserRepository.List", "select", usersTable,
		attribute.Int("query.page", query.Page),
		attribute.Int("query.limit", query.Limit),
	)
	defer func() { endSpan(span, err) }()

	base := r.db.WithContext(ctx).Model(&model.User{})
	if clause, args := searchClause(userSearchColumns, query.Search); clause != "" {
		base = base.Where(clause, args...)
	}

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, translateError("falha ao contar usuários", err)
	}

	if err := base.Session(&gorm.Session{}).
		Omit("password").
		Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, translateError("falha ao listar usuários", err)
	}

	span.SetAttributes(attribute.Int("users.count", len(users)))
	return users, total, nil
}

// Create persiste um novo usuário; email duplicado resulta em repository.ErrDuplicate
func (r *UserRepository) Create(ctx context.Context, user *model.User) (err error) {
	ctx, span := startSpan(ctx, "UserRepository.Create", "insert", usersTable)
	defer func() { endSpan(span, err) }()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError("falha ao criar usuário", err)
	}

	r.logger.Info("Usuário criado", zap.String("id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

// Update aplica os campos informados e devolve o registro atualizado
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (user *model.User, err error) {
	ctx, span := startSpan(ctx, "UserRepository.Update", "update", usersTable, attribute.String("user.id", id))
	defer func() { endSpan(span, err) }()

	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.User{ID: id}).Updates(fields).Error; err != nil {
			return nil, translateError("falha ao atualizar usuário", err)
		}
	}

	return r.FindByID(ctx, id)
}

// Delete remove o usuário definitivamente e devolve seus dados públicos
func (r *UserRepository) Delete(ctx context.Context, id string) (user *model.User, err error) {
	ctx, span := startSpan(ctx, "UserRepository.Delete", "delete", usersTable, attribute.String("user.id", id))
	defer func() { endSpan(span, err) }()

	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if result.Error != nil {
		return nil, translateError("falha ao remover usuário", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	r.logger.Info("Usuário removido", zap.String("id", id))
	return existing, nil
}
