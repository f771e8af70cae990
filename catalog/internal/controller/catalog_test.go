package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/foodhub/catalog/internal/repository"
	"github.com/Alturino/foodhub/catalog/internal/service"
	"github.com/Alturino/foodhub/catalog/pkg/response"
	inHttp "github.com/Alturino/foodhub/internal/http"
)

func newRouter() *mux.Router {
	router := mux.NewRouter()
	AttachCatalogController(router, service.NewCatalogService(repository.NewCatalogRepository()))
	return router
}

func TestCatalogController(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedLen    int
		expectedError  bool
	}{
		{name: "list restaurants", path: "/restaurants", expectedStatus: http.StatusOK, expectedLen: 4},
		{name: "filter restaurants by category", path: "/restaurants?category=sushi", expectedStatus: http.StatusOK, expectedLen: 1},
		{name: "menu of known restaurant", path: "/restaurants/2/menu", expectedStatus: http.StatusOK, expectedLen: 2},
		{name: "menu of unknown restaurant", path: "/restaurants/42/menu", expectedStatus: http.StatusNotFound, expectedError: true},
		{name: "unknown restaurant", path: "/restaurants/42", expectedStatus: http.StatusNotFound, expectedError: true},
		{name: "search restaurants", path: "/search/restaurants?q=burger", expectedStatus: http.StatusOK, expectedLen: 1},
		{name: "search restaurants without match", path: "/search/restaurants?q=zzz", expectedStatus: http.StatusOK, expectedLen: 0},
		{name: "search restaurants without query", path: "/search/restaurants", expectedStatus: http.StatusBadRequest, expectedError: true},
		{name: "search menu items", path: "/search/menu-items?q=roll", expectedStatus: http.StatusOK, expectedLen: 2},
		{name: "search menu items without query", path: "/search/menu-items?q=", expectedStatus: http.StatusBadRequest, expectedError: true},
	}

	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedError {
				body := inHttp.ErrorResponse{}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.NotEmpty(t, body.Message)
				return
			}
			body := []json.RawMessage{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Len(t, body, tt.expectedLen)
		})
	}
}

func TestFindRestaurantByIdController(t *testing.T) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/restaurants/4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := response.Restaurant{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Green Garden", body.Name)
	assert.Equal(t, "4.9", body.Rating.String())
}
