package mocks

import (
	"context"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/pkg/security"
	"github.com/stretchr/testify/mock"
)

// MockAuthService é um mock para o serviço de autenticação usado pelo middleware
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(token string) (*security.TokenPayload, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.TokenPayload), args.Error(1)
}

func (m *MockAuthService) Authorize(ctx context.Context, userID string, allowed []model.Role) (*model.User, error) {
	args := m.Called(ctx, userID, allowed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
