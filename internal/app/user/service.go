// Package user implementa consulta e manutenção de contas administrativas.
package user

import (
	"context"
	"errors"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"github.com/diillson/retail-admin-api/internal/validation"
	apperrors "github.com/diillson/retail-admin-api/pkg/errors"
	"github.com/diillson/retail-admin-api/pkg/security"
	"go.uber.org/zap"
)

// DefaultLimit é o tamanho de página padrão da listagem de usuários
const DefaultLimit = 5

// Service gerencia as contas de usuário
type Service struct {
	users  repository.UserRepository
	hasher *security.PasswordHasher
	logger *zap.Logger
}

// NewService cria o serviço de usuários
func NewService(users repository.UserRepository, hasher *security.PasswordHasher, logger *zap.Logger) *Service {
	return &Service{users: users, hasher: hasher, logger: logger}
}

func (s *Service) mapError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("User not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.BadRequest("This email is already registered", err)
	default:
		s.logger.Error("Falha no repositório de usuários", zap.Error(err))
		return apperrors.InternalServer("", err)
	}
}

// validateID devolve o identificador normalizado usado nas consultas
func validateID(id string) (string, error) {
	in := &IDInput{ID: id}
	if msg := validation.Validate(in); msg != "" {
		return "", apperrors.BadRequest(msg, nil)
	}
	return in.ID, nil
}

// Get busca um usuário pelo identificador, sem a senha
func (s *Service) Get(ctx context.Context, id string) (*model.User, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

// List retorna uma página de usuários; a busca cobre nome, sobrenome e email
func (s *Service) List(ctx context.Context, query model.ListQuery) ([]model.User, model.Pagination, error) {
	query = query.WithDefaults(DefaultLimit)

	users, total, err := s.users.List(ctx, query)
	if err != nil {
		return nil, model.Pagination{}, s.mapError(err)
	}
	if len(users) == 0 {
		return nil, model.Pagination{}, apperrors.NotFound("No users found", nil)
	}

	return users, model.NewPagination(total, query.Page, query.Limit), nil
}

// UpdateByAdmin altera nome e papel de um usuário
func (s *Service) UpdateByAdmin(ctx context.Context, id string, in *AdminUpdateInput) (*model.User, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}
	if msg := validation.Validate(in); msg != "" {
		return nil, apperrors.BadRequest(msg, nil)
	}

	fields := in.fields()
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("No fields to update", nil)
	}

	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapError(err)
	}

	if in.Role != nil {
		s.logger.Info("Papel de usuário alterado", zap.String("user_id", id), zap.String("role", string(*in.Role)))
	}
	return user, nil
}

// UpdateProfile altera os dados de autoatendimento; só SUPER_ADMIN altera o perfil de outra conta
func (s *Service) UpdateProfile(ctx context.Context, caller *model.User, id string, in *ProfileInput) (*model.User, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}
	if caller == nil || (caller.ID != id && caller.Role != model.RoleSuperAdmin) {
		return nil, apperrors.Forbidden("You can only update your own profile", nil)
	}
	if msg := validation.Validate(in); msg != "" {
		return nil, apperrors.BadRequest(msg, nil)
	}
	if !in.passwordsMatch() {
		return nil, apperrors.BadRequest("Passwords do not match", nil)
	}

	fields := in.fields()
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, apperrors.InternalServer("", err)
		}
		fields["password"] = hash
	}
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("No fields to update", nil)
	}

	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

// Delete remove a conta definitivamente e devolve seus dados públicos
func (s *Service) Delete(ctx context.Context, id string) (*model.User, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.logger.Info("Usuário removido", zap.String("user_id", id))
	return user, nil
}
