package http

import (
	"context"
	"net/http"

	"github.com/diillson/retail-admin-api/internal/app/auth"
	"github.com/diillson/retail-admin-api/internal/app/user"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/infra/middleware"
	apperrors "github.com/diillson/retail-admin-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthService é o que o handler usa para cadastro e login
type AuthService interface {
	Register(ctx context.Context, in *auth.RegisterInput) (*auth.Session, error)
	Login(ctx context.Context, in *auth.LoginInput) (*auth.Session, error)
}

// UserService é o que o handler usa para administrar contas
type UserService interface {
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, query model.ListQuery) ([]model.User, model.Pagination, error)
	UpdateByAdmin(ctx context.Context, id string, in *user.AdminUpdateInput) (*model.User, error)
	UpdateProfile(ctx context.Context, caller *model.User, id string, in *user.ProfileInput) (*model.User, error)
	Delete(ctx context.Context, id string) (*model.User, error)
}

// UserHandler implementa as rotas /users
type UserHandler struct {
	auth   AuthService
	users  UserService
	logger *zap.Logger
}

// NewUserHandler cria o handler de usuários
func NewUserHandler(authService AuthService, users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		auth:   authService,
		users:  users,
		logger: logger,
	}
}

// Register cria uma conta GUEST_ADMIN
func (h *UserHandler) Register(c *gin.Context) {
	var in auth.RegisterInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	session, err := h.auth.Register(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusCreated, session, "User created successfully")
}

// Login emite um token para credenciais válidas
func (h *UserHandler) Login(c *gin.Context) {
	var in auth.LoginInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	session, err := h.auth.Login(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, session, "Login successful")
}

// Me devolve a conta do próprio chamador
func (h *UserHandler) Me(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		respondError(c, h.logger, apperrors.Unauthorized("No token provided", nil))
		return
	}

	u, err := h.users.Get(c.Request.Context(), identity.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, u, "User fetched successfully")
}

// List pagina as contas
func (h *UserHandler) List(c *gin.Context) {
	users, pagination, err := h.users.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondList(c, users, pagination, "Users fetched successfully")
}

// Get devolve uma conta pelo id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, u, "User fetched successfully")
}

// Update altera nomes e papel de uma conta
func (h *UserHandler) Update(c *gin.Context) {
	var in user.AdminUpdateInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	u, err := h.users.UpdateByAdmin(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, u, "User updated successfully")
}

// UpdateProfile altera os dados de autoatendimento da conta
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var in user.ProfileInput
	if err := bindJSON(c, &in); err != nil {
		respondError(c, h.logger, err)
		return
	}

	caller, _ := middleware.CurrentUser(c)
	u, err := h.users.UpdateProfile(c.Request.Context(), caller, c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, u, "Profile updated successfully")
}

// Delete remove uma conta
func (h *UserHandler) Delete(c *gin.Context) {
	u, err := h.users.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, u, "User deleted successfully")
}
