package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/diillson/retail-admin-api/internal/app/auth"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"github.com/diillson/retail-admin-api/internal/mocks"
	"github.com/diillson/retail-admin-api/internal/testutils"
	apperrors "github.com/diillson/retail-admin-api/pkg/errors"
	"github.com/diillson/retail-admin-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const userID = "0b6c5f5e-2f7e-4d0c-9d44-7f0e54b1a111"

func newService(t *testing.T, repo *mocks.MockUserRepository, opts ...auth.Option) (*auth.AuthService, *security.KeyManager, *security.PasswordHasher) {
	logger := testutils.TestLogger(t)
	km, err := security.NewKeyManager("test-secret-0123456789", time.Hour, logger)
	require.NoError(t, err)
	hasher := security.NewPasswordHasher(bcrypt.MinCost)
	return auth.NewAuthService(repo, km, hasher, logger, opts...), km, hasher
}

func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	apiErr, ok := apperrors.As(err)
	require.True(t, ok, "expected APIError, got %v", err)
	assert.Equal(t, status, apiErr.Code)
	assert.Equal(t, message, apiErr.Message)
}

func validRegister() *auth.RegisterInput {
	return &auth.RegisterInput{
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates guest admin and issues token", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo := new(mocks.MockUserRepository)
		service, km, hasher := newService(t, repo)

		repo.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, repository.ErrNotFound).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*model.User)
				assert.Equal(t, model.RoleGuestAdmin, user.Role)
				assert.True(t, hasher.Verify("secret1", user.Password))
				user.ID = userID
			}).
			Return(nil).Once()

		session, err := service.Register(ctx, validRegister())
		require.NoError(t, err)
		assert.Empty(t, session.User.Password)

		payload, err := km.VerifyToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, security.TokenPayload{ID: userID, Email: "john@example.com", Role: "GUEST_ADMIN"}, *payload)
		repo.AssertExpectations(t)
	})

	t.Run("rejects existing email", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)

		repo.On("FindByEmail", mock.Anything, "john@example.com").Return(&model.User{ID: userID}, nil).Once()

		_, err := service.Register(ctx, validRegister())
		requireAPIError(t, err, http.StatusBadRequest, "User already exists")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("maps store conflict from concurrent registration", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)

		repo.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, repository.ErrNotFound).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := service.Register(ctx, validRegister())
		requireAPIError(t, err, http.StatusBadRequest, "This email is already registered")
	})

	t.Run("validation returns first message only", func(t *testing.T) {
		ctx, cancel := testutils.ContextWithTimeout(t)
		defer cancel()

		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)

		in := validRegister()
		in.ConfirmPassword = "secret2"
		_, err := service.Register(ctx, in)
		requireAPIError(t, err, http.StatusBadRequest, "Passwords do not match")

		in = validRegister()
		in.FirstName = "  "
		in.Email = "nope"
		_, err = service.Register(ctx, in)
		requireAPIError(t, err, http.StatusBadRequest, "First name is required")
		repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	_, _, hasher := newService(t, new(mocks.MockUserRepository))
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	stored := func(role model.Role) *model.User {
		return &model.User{ID: userID, Email: "john@example.com", Password: hash, Role: role}
	}

	t.Run("success", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, km, _ := newService(t, repo)
		repo.On("FindByEmail", mock.Anything, "john@example.com").Return(stored(model.RoleAdmin), nil).Once()

		session, err := service.Login(context.Background(), &auth.LoginInput{Email: " john@example.com ", Password: "secret1"})
		require.NoError(t, err)
		assert.Empty(t, session.User.Password)

		payload, err := km.VerifyToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, "ADMIN", payload.Role)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)
		repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()

		_, err := service.Login(context.Background(), &auth.LoginInput{Email: "ghost@example.com", Password: "secret1"})
		requireAPIError(t, err, http.StatusBadRequest, "User not found")
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)
		repo.On("FindByEmail", mock.Anything, "john@example.com").Return(stored(model.RoleAdmin), nil).Once()

		_, err := service.Login(context.Background(), &auth.LoginInput{Email: "john@example.com", Password: "wrong-pass"})
		requireAPIError(t, err, http.StatusBadRequest, "Invalid password")
	})

	t.Run("admin only login rejects non admin roles", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo, auth.WithAdminOnlyLogin(true))
		repo.On("FindByEmail", mock.Anything, "john@example.com").Return(stored(model.Role("CUSTOMER")), nil).Once()

		_, err := service.Login(context.Background(), &auth.LoginInput{Email: "john@example.com", Password: "secret1"})
		requireAPIError(t, err, http.StatusForbidden, "Admin access required")
	})

	t.Run("store failure is internal", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)
		repo.On("FindByEmail", mock.Anything, "john@example.com").Return(nil, errors.New("connection reset")).Once()

		_, err := service.Login(context.Background(), &auth.LoginInput{Email: "john@example.com", Password: "secret1"})
		requireAPIError(t, err, http.StatusInternalServerError, "Internal server error")
	})
}

func TestAuthService_Authorize(t *testing.T) {
	t.Run("uses live role instead of token role", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)

		// token dizia SUPER_ADMIN, mas o papel foi rebaixado
		repo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Role: model.RoleAdmin}, nil)

		_, err := service.Authorize(context.Background(), userID, model.SuperAdminRoles)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)

		user, err := service.Authorize(context.Background(), userID, model.AdminRoles)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, user.Role)
	})

	t.Run("super admin passes both gates", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)
		repo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Role: model.RoleSuperAdmin}, nil)

		_, err := service.Authorize(context.Background(), userID, model.SuperAdminRoles)
		assert.NoError(t, err)
		_, err = service.Authorize(context.Background(), userID, model.AdminRoles)
		assert.NoError(t, err)
	})

	t.Run("deleted user is denied", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)
		repo.On("FindByID", mock.Anything, userID).Return(nil, repository.ErrNotFound)

		_, err := service.Authorize(context.Background(), userID, model.AdminRoles)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		service, _, _ := newService(t, repo)
		boom := errors.New("boom")
		repo.On("FindByID", mock.Anything, userID).Return(nil, boom)

		_, err := service.Authorize(context.Background(), userID, model.AdminRoles)
		assert.ErrorIs(t, err, boom)
	})
}
