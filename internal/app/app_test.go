package app_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/diillson/retail-admin-api/internal/app"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/testutils"
	"github.com/diillson/retail-admin-api/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AllowedOrigins: []string{"*"}},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			Issuer:          "retail-admin-api-test",
			TokenExpiration: time.Hour,
			BcryptCost:      4,
		},
		Metrics: config.MetricsConfig{Enabled: true, PrometheusPath: "/metrics"},
		Tracing: config.TracingConfig{ServiceName: "retail-admin-api-test"},
	}
}

func setupApp(t *testing.T) (*app.App, *gin.Engine) {
	db := testutils.NewTestDatabase(t)
	application, err := app.NewAppWithDatabase(testutils.TestLogger(t), testConfig(), db)
	require.NoError(t, err)

	router := testutils.SetupTestRouter(t)
	application.RegisterRoutes(router)
	return application, router
}

type session struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func register(t *testing.T, router *gin.Engine, email string) session {
	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users/register", map[string]string{
		"firstName":       "John",
		"lastName":        "Doe",
		"email":           email,
		"password":        "secret1",
		"confirmPassword": "secret1",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)

	var s session
	env := testutils.ParseEnvelope(t, resp, &s)
	require.True(t, env.Success)
	require.Equal(t, "User created successfully", env.Message)
	return s
}

func promote(t *testing.T, application *app.App, id string, role model.Role) {
	err := application.DB.DB().Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	_, router := setupApp(t)

	s := register(t, router, "john@example.com")
	assert.Equal(t, model.RoleGuestAdmin, s.User.Role)
	assert.NotEmpty(t, s.Token)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users/register", map[string]string{
		"firstName": "John", "lastName": "Doe", "email": "JOHN@example.com",
		"password": "secret1", "confirmPassword": "secret1",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "User already exists", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/users/login", map[string]string{
		"email": "john@example.com", "password": "wrong-pass",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Invalid password", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/users/login", map[string]string{
		"email": "john@example.com", "password": "secret1",
	}, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, "Login successful", testutils.ParseEnvelope(t, resp, nil).Message)
	assert.NotContains(t, resp.Body.String(), "password")

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/users/login", "{not json", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Invalid request data", testutils.ParseEnvelope(t, resp, nil).Message)
}

func TestRoleGatesUseLiveRole(t *testing.T) {
	application, router := setupApp(t)
	s := register(t, router, "guest@example.com")
	auth := testutils.BearerHeader(s.Token)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/users/me", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var me model.User
	testutils.ParseEnvelope(t, resp, &me)
	assert.Equal(t, s.User.ID, me.ID)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)
	assert.Equal(t, "Super admin access required", testutils.ParseEnvelope(t, resp, nil).Message)

	// O mesmo token passa a valer como SUPER_ADMIN assim que o papel muda no banco
	promote(t, application, s.User.ID, model.RoleSuperAdmin)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	env := testutils.ParseEnvelope(t, resp, nil)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 5, env.Pagination.Limit)
	assert.Equal(t, int64(1), env.Pagination.Total)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
}

func TestListPagingIsBounded(t *testing.T) {
	application, router := setupApp(t)
	root := register(t, router, "root@example.com")
	promote(t, application, root.User.ID, model.RoleSuperAdmin)
	auth := testutils.BearerHeader(root.Token)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/users?limit=9223372036854775807", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	env := testutils.ParseEnvelope(t, resp, nil)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, model.MaxLimit, env.Pagination.Limit)
	assert.Equal(t, int64(1), env.Pagination.Total)

	// offset além do último registro não devolve a primeira página
	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users?page=2&limit=4611686018427387904", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "No users found", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/brands?page=9223372036854775807&limit=9223372036854775807", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "No brands found", testutils.ParseEnvelope(t, resp, nil).Message)
}

func TestEmptyBodyReachesValidation(t *testing.T) {
	application, router := setupApp(t)
	root := register(t, router, "root@example.com")
	promote(t, application, root.User.ID, model.RoleSuperAdmin)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/users/register", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "First name is required", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/users/login", "", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Email is required", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/brands", nil, testutils.BearerHeader(root.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Brand name is required", testutils.ParseEnvelope(t, resp, nil).Message)
}

func TestUserAdministration(t *testing.T) {
	application, router := setupApp(t)
	admin := register(t, router, "root@example.com")
	promote(t, application, admin.User.ID, model.RoleSuperAdmin)
	other := register(t, router, "jane@example.com")
	auth := testutils.BearerHeader(admin.Token)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/users/not-a-uuid", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Invalid ID format", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users/"+strings.ToUpper(other.User.ID), nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var fetched model.User
	testutils.ParseEnvelope(t, resp, &fetched)
	assert.Equal(t, other.User.ID, fetched.ID)

	resp = testutils.MakeRequest(t, router, http.MethodPut, "/users/"+other.User.ID, map[string]string{"role": "ADMIN"}, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var updated model.User
	testutils.ParseEnvelope(t, resp, &updated)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	resp = testutils.MakeRequest(t, router, http.MethodPut, "/users/"+other.User.ID, map[string]string{"role": "OWNER"}, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Invalid role", testutils.ParseEnvelope(t, resp, nil).Message)

	// O próprio usuário altera o perfil
	resp = testutils.MakeRequest(t, router, http.MethodPut, "/users/"+other.User.ID+"/profile",
		map[string]string{"phone": "5551234567"}, testutils.BearerHeader(other.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, "Profile updated successfully", testutils.ParseEnvelope(t, resp, nil).Message)

	// Um ADMIN não altera o perfil de outra conta
	resp = testutils.MakeRequest(t, router, http.MethodPut, "/users/"+admin.User.ID+"/profile",
		map[string]string{"phone": "5550000000"}, testutils.BearerHeader(other.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)

	resp = testutils.MakeRequest(t, router, http.MethodDelete, "/users/"+other.User.ID, nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var deleted model.User
	env := testutils.ParseEnvelope(t, resp, &deleted)
	assert.Equal(t, "User deleted successfully", env.Message)
	assert.Equal(t, other.User.ID, deleted.ID)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/users/"+other.User.ID, nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}

func TestCatalogRoutes(t *testing.T) {
	application, router := setupApp(t)
	guest := register(t, router, "guest@example.com")
	root := register(t, router, "root@example.com")
	promote(t, application, root.User.ID, model.RoleSuperAdmin)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/brands", nil, testutils.BearerHeader(guest.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "No brands found", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/brands", map[string]string{"name": "Acme"}, testutils.BearerHeader(guest.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusForbidden)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/brands", map[string]string{"name": "Acme"}, testutils.BearerHeader(root.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	var brand model.Brand
	env := testutils.ParseEnvelope(t, resp, &brand)
	assert.Equal(t, "Brand created successfully", env.Message)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/brands", map[string]string{"name": "Acme"}, testutils.BearerHeader(root.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "This brand name already exists", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/brands?search=acm&page=abc", nil, testutils.BearerHeader(guest.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var brands []model.Brand
	env = testutils.ParseEnvelope(t, resp, &brands)
	require.Len(t, brands, 1)
	assert.Equal(t, 1, env.Pagination.Page)
	assert.Equal(t, 10, env.Pagination.Limit)

	resp = testutils.MakeRequest(t, router, http.MethodPut, "/brands/"+brand.ID, map[string]string{"name": ""}, testutils.BearerHeader(root.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Brand name is required", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodPost, "/categories", map[string]string{"name": "Shoes"}, testutils.BearerHeader(root.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	assert.Equal(t, "Category created successfully", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodDelete, "/brands/"+brand.ID, nil, testutils.BearerHeader(root.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/brands/"+brand.ID, nil, testutils.BearerHeader(guest.Token))
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	assert.Equal(t, "Brand not found", testutils.ParseEnvelope(t, resp, nil).Message)
}

func TestLocationRoutes(t *testing.T) {
	_, router := setupApp(t)
	auth := testutils.BearerHeader(register(t, router, "guest@example.com").Token)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/provinces", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var provinces []model.Province
	testutils.ParseEnvelope(t, resp, &provinces)
	assert.NotEmpty(t, provinces)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/districts/abc", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.Equal(t, "Invalid province ID", testutils.ParseEnvelope(t, resp, nil).Message)

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/neighborhoods/3401", nil, auth)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	var neighborhoods []model.Neighborhood
	testutils.ParseEnvelope(t, resp, &neighborhoods)
	assert.Len(t, neighborhoods, 2)
}

func TestHealthAndMetrics(t *testing.T) {
	_, router := setupApp(t)

	for _, path := range []string{"/health", "/health/liveness", "/health/readiness"} {
		resp := testutils.MakeRequest(t, router, http.MethodGet, path, nil, nil)
		testutils.RequireHTTPStatus(t, resp, http.StatusOK)
		assert.Contains(t, resp.Body.String(), `"status":"UP"`)
	}

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/metrics", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "retail_admin_requests_total")

	resp = testutils.MakeRequest(t, router, http.MethodGet, "/nowhere", nil, nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
}

func TestNewAppWithDatabase_RequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""

	_, err := app.NewAppWithDatabase(testutils.TestLogger(t), cfg, testutils.NewTestDatabase(t))
	testutils.CheckError(t, err, "jwt secret key is not configured")
}
