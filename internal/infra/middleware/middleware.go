package middleware

import (
	"net/http"
	"time"

	"github.com/diillson/retail-admin-api/internal/infra/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options configura o conjunto de middlewares
type Options struct {
	ServiceName    string
	AllowedOrigins []string
}

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	securityMiddleware *SecurityMiddleware
	tracingMiddleware  *TracingMiddleware
	metricsMiddleware  *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares; apiMetrics pode ser nil
func NewMiddleware(logger *zap.Logger, opts Options, authService Authenticator, apiMetrics *metrics.APIMetrics) *Middleware {
	m := &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(authService, apiMetrics, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		securityMiddleware: NewSecurityMiddleware(logger, opts.AllowedOrigins),
		tracingMiddleware:  NewTracingMiddleware(logger, opts.ServiceName),
	}
	if apiMetrics != nil {
		m.metricsMiddleware = NewMetricsMiddleware(apiMetrics, logger)
	}
	return m
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) {
		c.Next() // No-op se não configurado
	}
}

// RegisterMetricsEndpoint expõe /metrics quando as métricas estão habilitadas
func (m *Middleware) RegisterMetricsEndpoint(router gin.IRoutes, path string) {
	if m.metricsMiddleware != nil {
		m.metricsMiddleware.RegisterEndpoint(router, path)
	}
}

// Authenticate exige um bearer token válido
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return m.authMiddleware.Authenticate()
}

// RequireAdmin exige papel administrativo atual
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return m.authMiddleware.RequireAdmin()
}

// RequireSuperAdmin exige papel SUPER_ADMIN atual
func (m *Middleware) RequireSuperAdmin() gin.HandlerFunc {
	return m.authMiddleware.RequireSuperAdmin()
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// IgnoreFavicon é um middleware que ignora requisições para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if identity, ok := Identity(c); ok {
			fields = append(fields, zap.String("user_id", identity.ID))
		}

		m.logger.Info("request completed", fields...)
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}
