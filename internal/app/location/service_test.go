package location_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/diillson/retail-admin-api/internal/app/location"
	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/mocks"
	"github.com/diillson/retail-admin-api/internal/testutils"
	apperrors "github.com/diillson/retail-admin-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Districts(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		raw     string
		status  int
		message string
	}{
		{"not a number", "abc", http.StatusBadRequest, "Invalid province ID"},
		{"zero", "0", http.StatusBadRequest, "Invalid province ID"},
		{"negative", "-4", http.StatusBadRequest, "Invalid province ID"},
		{"overflow", "99999999999999999999", http.StatusBadRequest, "Invalid province ID"},
	}

	service := location.NewService(new(mocks.MockLocationRepository), testutils.TestLogger(t))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Districts(ctx, tc.raw)
			apiErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, apiErr.Code)
			assert.Equal(t, tc.message, apiErr.Message)
		})
	}

	t.Run("found", func(t *testing.T) {
		repo := new(mocks.MockLocationRepository)
		service := location.NewService(repo, testutils.TestLogger(t))
		repo.On("ListDistricts", mock.Anything, 34).Return([]model.District{{ID: 3401, Name: "Kadıköy", ProvinceID: 34}}, nil).Once()

		districts, err := service.Districts(ctx, "34")
		require.NoError(t, err)
		assert.Len(t, districts, 1)
	})

	t.Run("empty", func(t *testing.T) {
		repo := new(mocks.MockLocationRepository)
		service := location.NewService(repo, testutils.TestLogger(t))
		repo.On("ListDistricts", mock.Anything, 5).Return([]model.District{}, nil).Once()

		_, err := service.Districts(ctx, "5")
		assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
	})
}

func TestService_ProvincesAndNeighborhoods(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockLocationRepository)
	service := location.NewService(repo, testutils.TestLogger(t))

	repo.On("ListProvinces", mock.Anything).Return(nil, errors.New("db down")).Once()
	_, err := service.Provinces(ctx)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(err))

	repo.On("ListProvinces", mock.Anything).Return([]model.Province{}, nil).Once()
	_, err = service.Provinces(ctx)
	apiErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "No provinces found", apiErr.Message)

	_, err = service.Neighborhoods(ctx, "x")
	apiErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid district ID", apiErr.Message)

	repo.On("ListNeighborhoods", mock.Anything, 3401).Return([]model.Neighborhood{{ID: 1, Name: "Moda", DistrictID: 3401}}, nil).Once()
	neighborhoods, err := service.Neighborhoods(ctx, "3401")
	require.NoError(t, err)
	assert.Equal(t, "Moda", neighborhoods[0].Name)
}
