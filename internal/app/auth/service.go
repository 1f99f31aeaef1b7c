package auth

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

// ErrAccessDenied indica que o papel atual do usuário não está no conjunto permitido
var ErrAccessDenied = errors.New("access denied")

// TokenManager emite e verifica os tokens de acesso
type TokenManager interface {
	GenerateToken(payload security.TokenPayload) (string, error)
	VerifyToken(token string) (*security.TokenPayload, error)
}

// Session é a resposta de registro e login
type Session struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService gerencia registro, login e verificação de identidade
type AuthService struct {
	users          repository.UserRepository
	tokens         TokenManager
	hasher         *security.PasswordHasher
	logger         *zap.Logger
	adminOnlyLogin bool
}

// Option customiza o AuthService
type Option func(*AuthService)

// WithAdminOnlyLogin recusa login de contas fora dos papéis administrativos
func WithAdminOnlyLogin(enabled bool) Option {
	return func(s *AuthService) {
		s.adminOnlyLogin = enabled
	}
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(users repository.UserRepository, tokens TokenManager, hasher *security.PasswordHasher, logger *zap.Logger, opts ...Option) *AuthService {
	s := &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register cria uma conta GUEST_ADMIN e já devolve um token para ela
func (s *AuthService) Register(ctx context.Context, in *RegisterInput) (*Session, error) {
	if msg := validation.Validate(in); msg != "" {
		return nil, apperrors.BadRequest(msg, nil)
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperrors.BadRequest("User already exists", nil)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.InternalServer("", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.InternalServer("", err)
	}

	user := &model.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
		Role:      model.RoleGuestAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Cadastro concorrente com o mesmo email perde na restrição única
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.BadRequest("This email is already registered", err)
		}
		return nil, apperrors.InternalServer("", err)
	}

	s.logger.Info("Usuário registrado", zap.String("user_id", user.ID))
	return s.session(user)
}

// Login valida as credenciais e emite um novo token
func (s *AuthService) Login(ctx context.Context, in *LoginInput) (*Session, error) {
	if msg := validation.Validate(in); msg != "" {
		return nil, apperrors.BadRequest(msg, nil)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest("User not found", nil)
		}
		return nil, apperrors.InternalServer("", err)
	}

	if !s.hasher.Verify(in.Password, user.Password) {
		s.logger.Warn("Falha na autenticação", zap.String("user_id", user.ID))
		return nil, apperrors.BadRequest("Invalid password", nil)
	}

	if s.adminOnlyLogin && !user.Role.In(model.AdminRoles) {
		return nil, apperrors.Forbidden("Admin access required", nil)
	}

	s.logger.Info("Login bem-sucedido", zap.String("user_id", user.ID))
	return s.session(user)
}

// Authenticate verifica o token e devolve a identidade nele contida.
// Os erros são security.ErrTokenExpired ou security.ErrTokenInvalid.
func (s *AuthService) Authenticate(token string) (*security.TokenPayload, error) {
	return s.tokens.VerifyToken(token)
}

// Authorize recarrega o usuário e confere o papel atual, não o do token
func (s *AuthService) Authorize(ctx context.Context, userID string, allowed []model.Role) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	if !user.Role.In(allowed) {
		s.logger.Debug("Papel sem permissão",
			zap.String("user_id", user.ID),
			zap.String("role", string(user.Role)))
		return nil, ErrAccessDenied
	}

	return user, nil
}

func (s *AuthService) session(user *model.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(security.TokenPayload{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	})
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, apperrors.InternalServer("", err)
	}

	user.Password = ""
	return &Session{User: user, Token: token}, nil
}
