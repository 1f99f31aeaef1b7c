package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/diillson/retail-admin-api/internal/app/auth"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/infra/metrics"
	"github.com/diillson/retail-admin-api/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey    = "identity"
	currentUserKey = "currentUser"
)

// Authenticator é o que o pipeline de autenticação precisa do serviço de auth
type Authenticator interface {
	Authenticate(token string) (*security.TokenPayload, error)
	Authorize(ctx context.Context, userID string, allowed []model.Role) (*model.User, error)
}

// AuthMiddleware gerencia middlewares de autenticação
type AuthMiddleware struct {
	authService Authenticator
	metrics     *metrics.APIMetrics
	logger      *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação; metrics pode ser nil
func NewAuthMiddleware(authService Authenticator, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		metrics:     apiMetrics,
		logger:      logger,
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, status int, reason, message string) {
	if m.metrics != nil {
		m.metrics.AuthRejected(reason)
	}
	abort(c, status, message)
}

// bearerToken extrai o token de "Authorization: Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate verifica o token e anexa a identidade ao contexto da requisição
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			m.reject(c, http.StatusUnauthorized, "missing_token", "No token provided")
			return
		}

		identity, err := m.authService.Authenticate(token)
		if err != nil {
			switch {
			case errors.Is(err, security.ErrTokenExpired):
				m.reject(c, http.StatusUnauthorized, "expired_token", "Token expired")
			case errors.Is(err, security.ErrTokenInvalid):
				m.reject(c, http.StatusUnauthorized, "invalid_token", "Invalid token")
			default:
				m.logger.Error("falha ao verificar token", zap.Error(err))
				m.reject(c, http.StatusInternalServerError, "error", "Internal server error")
			}
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin permite GUEST_ADMIN, ADMIN e SUPER_ADMIN
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.requireRoles(model.AdminRoles, "Admin access required")
}

// RequireSuperAdmin permite apenas SUPER_ADMIN
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return m.requireRoles(model.SuperAdminRoles, "Super admin access required")
}

// requireRoles recarrega o usuário a cada requisição: vale o papel atual, não o do token
func (m *AuthMiddleware) requireRoles(allowed []model.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			m.logger.Error("gate de papel executado sem autenticação", zap.String("path", c.FullPath()))
			m.reject(c, http.StatusInternalServerError, "error", "Internal server error")
			return
		}

		user, err := m.authService.Authorize(c.Request.Context(), identity.ID, allowed)
		if err != nil {
			if errors.Is(err, auth.ErrAccessDenied) {
				m.reject(c, http.StatusForbidden, "forbidden", message)
				return
			}
			m.logger.Error("falha ao verificar papel", zap.String("user_id", identity.ID), zap.Error(err))
			m.reject(c, http.StatusInternalServerError, "error", "Internal server error")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// Identity retorna a identidade verificada do token
func Identity(c *gin.Context) (*security.TokenPayload, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*security.TokenPayload)
	return identity, ok
}

// CurrentUser retorna o usuário recarregado pelo gate de papel
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}

// abort encerra a requisição com o envelope de erro padrão
func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"data":    nil,
		"message": message,
	})
}
