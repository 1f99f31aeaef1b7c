package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	// ErrTokenExpired indica que o prazo de validade do token já passou
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid cobre assinatura incorreta, estrutura malformada ou algoritmo inesperado
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenPayload é a identidade transportada pelo token
type TokenPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Claims são as claims assinadas no JWT
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// KeyManager emite e verifica tokens HS256 com o segredo do processo
type KeyManager struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// Option customiza o KeyManager
type Option func(*KeyManager)

// WithClock substitui o relógio usado na emissão e verificação
func WithClock(now func() time.Time) Option {
	return func(km *KeyManager) {
		km.now = now
	}
}

// WithIssuer define a claim iss
func WithIssuer(issuer string) Option {
	return func(km *KeyManager) {
		km.issuer = issuer
	}
}

// NewKeyManager cria o gerenciador; segredo vazio é erro fatal de inicialização
func NewKeyManager(secret string, ttl time.Duration, logger *zap.Logger, opts ...Option) (*KeyManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid token lifetime: %s", ttl)
	}

	km := &KeyManager{
		secretKey: []byte(secret),
		ttl:       ttl,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(km)
	}

	return km, nil
}

// TTL retorna o tempo de vida dos tokens emitidos
func (km *KeyManager) TTL() time.Duration {
	return km.ttl
}

// GenerateToken assina o payload com validade fixa
func (km *KeyManager) GenerateToken(payload TokenPayload) (string, error) {
	now := km.now()

	claims := &Claims{
		UserID: payload.ID,
		Email:  payload.Email,
		Role:   payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    km.issuer,
			Subject:   payload.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(km.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(km.secretKey)
	if err != nil {
		km.logger.Error("falha ao gerar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

// VerifyToken valida assinatura e validade, devolvendo o payload reconstruído
func (km *KeyManager) VerifyToken(tokenString string) (*TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return km.secretKey, nil
	}, jwt.WithTimeFunc(km.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		km.logger.Debug("token JWT rejeitado", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return &TokenPayload{ID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
