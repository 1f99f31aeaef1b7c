package database_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/diillson/retail-admin-api/internal/adapter/database"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/domain/repository"
	"github.com/diillson/retail-admin-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *database.UserRepository, first, last, email string, createdAt time.Time) *model.User {
	t.Helper()
	user := &model.User{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  "$2a$10$hash",
		Role:      model.RoleGuestAdmin,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_PasswordOnlyOnEmailLookup(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewUserRepository(db.DB(), testutils.TestLogger(t))
	ctx := context.Background()

	created := seedUser(t, repo, "John", "Doe", "john@example.com", time.Now())
	assert.NotEmpty(t, created.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, byID.Password)
	assert.Equal(t, "john@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "JOHN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", byEmail.Password)

	users, _, err := repo.List(ctx, model.ListQuery{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewUserRepository(db.DB(), testutils.TestLogger(t))

	seedUser(t, repo, "John", "Doe", "john@example.com", time.Now())

	err := repo.Create(context.Background(), &model.User{FirstName: "J", LastName: "D", Email: "john@example.com", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, total, err := repo.List(context.Background(), model.ListQuery{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUserRepository_SearchAcrossColumns(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewUserRepository(db.DB(), testutils.TestLogger(t))
	now := time.Now()

	seedUser(t, repo, "John", "Smith", "js@example.com", now)
	seedUser(t, repo, "Alice", "Johnson", "alice@example.com", now.Add(time.Second))
	seedUser(t, repo, "Bob", "Brown", "bob@jo-mail.com", now.Add(2*time.Second))
	seedUser(t, repo, "Carol", "White", "carol@example.com", now.Add(3*time.Second))

	users, total, err := repo.List(context.Background(), model.ListQuery{Page: 1, Limit: 10, Search: "jo"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 3)
	assert.Equal(t, "Bob", users[0].FirstName)
	assert.Equal(t, "John", users[2].FirstName)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewUserRepository(db.DB(), testutils.TestLogger(t))
	ctx := context.Background()

	user := seedUser(t, repo, "John", "Doe", "john@example.com", time.Now())

	updated, err := repo.Update(ctx, user.ID, map[string]interface{}{"role": model.RoleAdmin, "first_name": "Johnny"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Equal(t, "Johnny", updated.FirstName)
	assert.Empty(t, updated.Password)

	_, err = repo.Update(ctx, "missing", map[string]interface{}{"first_name": "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, deleted.ID)

	_, err = repo.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogRepository_PaginationOrder(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewBrandRepository(db.DB(), testutils.TestLogger(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 12; i++ {
		brand := &model.Brand{Name: fmt.Sprintf("Brand %02d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Create(ctx, brand))
	}

	page, total, err := repo.List(ctx, model.ListQuery{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, page, 5)
	// mais recentes primeiro: página 2 cobre as posições 6..10
	assert.Equal(t, "Brand 07", page[0].Name)
	assert.Equal(t, "Brand 03", page[4].Name)
	assert.Equal(t, 3, model.NewPagination(total, 2, 5).TotalPages)
}

func TestCatalogRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewBrandRepository(db.DB(), testutils.TestLogger(t))
	ctx := context.Background()

	for _, name := range []string{"Acme", "Globex", "100% Cotton", "Bang!"} {
		require.NoError(t, repo.Create(ctx, &model.Brand{Name: name}))
	}

	cases := []struct {
		search string
		want   []string
	}{
		{"%", []string{"100% Cotton"}},
		{"_", nil},
		{"0% c", []string{"100% Cotton"}},
		{"!", []string{"Bang!"}},
		{"GLOB", []string{"Globex"}},
	}
	for _, tc := range cases {
		t.Run(tc.search, func(t *testing.T) {
			found, total, err := repo.List(ctx, model.ListQuery{Page: 1, Limit: 10, Search: tc.search})
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.want)), total)
			names := make([]string, 0, len(found))
			for _, b := range found {
				names = append(names, b.Name)
			}
			assert.ElementsMatch(t, tc.want, names)
		})
	}
}

func TestCatalogRepository_RoundTrip(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewCategoryRepository(db.DB(), testutils.TestLogger(t))
	ctx := context.Background()

	category := &model.Category{Name: "Acme"}
	require.NoError(t, repo.Create(ctx, category))

	fetched, err := repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", fetched.Name)
	assert.False(t, fetched.CreatedAt.IsZero())

	_, err = repo.Update(ctx, category.ID, map[string]interface{}{"name": "Acme Corp"})
	require.NoError(t, err)

	fetched, err = repo.FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", fetched.Name)

	err = repo.Create(ctx, &model.Category{Name: "Acme Corp"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	items, total, err := repo.List(ctx, model.ListQuery{Page: 1, Limit: 10, Search: "ACME"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestCatalogRepository_UpdateToDuplicateName(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewBrandRepository(db.DB(), testutils.TestLogger(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Brand{Name: "Acme"}))
	other := &model.Brand{Name: "Globex"}
	require.NoError(t, repo.Create(ctx, other))

	_, err := repo.Update(ctx, other.ID, map[string]interface{}{"name": "Acme"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestLocationRepository_Seeded(t *testing.T) {
	db := testutils.NewTestDatabase(t)
	repo := database.NewLocationRepository(db.DB())
	ctx := context.Background()

	provinces, err := repo.ListProvinces(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, provinces)

	districts, err := repo.ListDistricts(ctx, 34)
	require.NoError(t, err)
	require.NotEmpty(t, districts)
	for _, d := range districts {
		assert.Equal(t, 34, d.ProvinceID)
	}

	neighborhoods, err := repo.ListNeighborhoods(ctx, 3401)
	require.NoError(t, err)
	assert.Len(t, neighborhoods, 2)

	none, err := repo.ListDistricts(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
