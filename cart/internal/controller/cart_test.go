package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/foodhub/cart/internal/repository"
	"github.com/Alturino/foodhub/cart/internal/service"
	"github.com/Alturino/foodhub/cart/pkg/response"
	catalogResponse "github.com/Alturino/foodhub/catalog/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	inHttp "github.com/Alturino/foodhub/internal/http"
	"github.com/Alturino/foodhub/internal/pricing"
	orderRequest "github.com/Alturino/foodhub/order/pkg/request"
	orderResponse "github.com/Alturino/foodhub/order/pkg/response"
)

type stubCatalog struct{}

func (stubCatalog) FindMenuItemById(_ context.Context, id string) (catalogResponse.MenuItem, error) {
	if id != "m1" {
		return catalogResponse.MenuItem{}, inErrors.ErrMenuItemNotFound
	}
	return catalogResponse.MenuItem{
		ID:           "m1",
		RestaurantID: "1",
		Name:         "Salmon Avocado Roll",
		Price:        decimal.RequireFromString("12.99"),
		IsAvailable:  true,
	}, nil
}

func (stubCatalog) FindRestaurantById(_ context.Context, id string) (catalogResponse.Restaurant, error) {
	return catalogResponse.Restaurant{ID: id, Name: "Tokyo Sushi Bar"}, nil
}

type stubOrders struct{}

func (stubOrders) CreateOrder(_ context.Context, param orderRequest.CreateOrder) (orderResponse.Order, error) {
	return orderResponse.Order{
		ID:           uuid.New(),
		UserID:       param.UserID,
		RestaurantID: param.RestaurantID,
		Status:       orderResponse.StatusPending,
	}, nil
}

func newRouter() *mux.Router {
	router := mux.NewRouter()
	svc := service.NewCartService(
		repository.NewMemoryCartRepository(),
		stubCatalog{},
		stubOrders{},
		pricing.Default(),
		nil,
	)
	AttachCartController(router, svc)
	return router
}

func serve(router *mux.Router, method string, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) response.Cart {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := response.Cart{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cart))
	return cart
}

func TestCartController(t *testing.T) {
	router := newRouter()

	cart := decodeCart(t, serve(router, http.MethodGet, "/carts/c1", ""))
	assert.Empty(t, cart.Lines)
	assert.Equal(t, "2.99", cart.Total.StringFixed(2))

	serve(router, http.MethodPost, "/carts/c1/items", `{"menuItemId":"m1"}`)
	cart = decodeCart(t, serve(router, http.MethodPost, "/carts/c1/items", `{"menuItemId":"m1"}`))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "31.28", cart.Total.StringFixed(2))

	lineId := cart.Lines[0].ID.String()
	cart = decodeCart(t, serve(router, http.MethodPut, "/carts/c1/items/"+lineId, `{"quantity":1}`))
	assert.Equal(t, 1, cart.ItemCount)

	cart = decodeCart(t, serve(router, http.MethodPost, "/carts/c1/open", ""))
	assert.True(t, cart.IsOpen)
	cart = decodeCart(t, serve(router, http.MethodPost, "/carts/c1/close", ""))
	assert.False(t, cart.IsOpen)

	rec := serve(router, http.MethodPost, "/carts/c1/checkout", `{"userId":"user-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	order := orderResponse.Order{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
	assert.Equal(t, "user-1", order.UserID)

	cart = decodeCart(t, serve(router, http.MethodGet, "/carts/c1", ""))
	assert.Empty(t, cart.Lines)

	serve(router, http.MethodPost, "/carts/c2/items", `{"menuItemId":"m1"}`)
	cart = decodeCart(t, serve(router, http.MethodDelete, "/carts/c2", ""))
	assert.Empty(t, cart.Lines)

	cart = decodeCart(t, serve(router, http.MethodPost, "/carts/c3/items", `{"menuItemId":"m1"}`))
	cart = decodeCart(t, serve(router, http.MethodDelete, "/carts/c3/items/"+cart.Lines[0].ID.String(), ""))
	assert.Empty(t, cart.Lines)
}

func TestCartControllerErrors(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "malformed add body", method: http.MethodPost, path: "/carts/c1/items", body: `{`, expectedStatus: http.StatusBadRequest},
		{name: "unknown menu item", method: http.MethodPost, path: "/carts/c1/items", body: `{"menuItemId":"m404"}`, expectedStatus: http.StatusNotFound},
		{name: "malformed lineId", method: http.MethodPut, path: "/carts/c1/items/abc", body: `{"quantity":1}`, expectedStatus: http.StatusBadRequest},
		{name: "missing quantity", method: http.MethodPut, path: "/carts/c1/items/" + uuid.NewString(), body: `{}`, expectedStatus: http.StatusBadRequest},
		{name: "malformed remove lineId", method: http.MethodDelete, path: "/carts/c1/items/abc", expectedStatus: http.StatusBadRequest},
		{name: "checkout empty cart", method: http.MethodPost, path: "/carts/c1/checkout", body: `{"userId":"user-1"}`, expectedStatus: http.StatusBadRequest},
		{name: "checkout malformed body", method: http.MethodPost, path: "/carts/c1/checkout", body: `{`, expectedStatus: http.StatusBadRequest},
	}

	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := inHttp.ErrorResponse{}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Message)
		})
	}
}
