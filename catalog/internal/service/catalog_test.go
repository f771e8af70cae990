package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/foodhub/catalog/internal/repository"
	"github.com/Alturino/foodhub/catalog/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
)

func newService() *CatalogService {
	return NewCatalogService(repository.NewCatalogRepository())
}

func restaurantNames(restaurants []response.Restaurant) []string {
	names := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		names = append(names, r.Name)
	}
	return names
}

func menuItemIds(items []response.MenuItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestFindRestaurants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "given empty category should return all", input: "", expected: []string{"Tokyo Sushi Bar", "Mario's Pizzeria", "Burger Palace", "Green Garden"}},
		{name: "given all should return all", input: "all", expected: []string{"Tokyo Sushi Bar", "Mario's Pizzeria", "Burger Palace", "Green Garden"}},
		{name: "given pizza should match cuisine ignoring case", input: "Pizza", expected: []string{"Mario's Pizzeria"}},
		{name: "given healthy should match green garden", input: "healthy", expected: []string{"Green Garden"}},
		{name: "given mexican should return empty", input: "mexican", expected: []string{}},
	}

	svc := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := svc.FindRestaurants(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, restaurantNames(actual))
		})
	}
}

func TestFindMenuByRestaurantId(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		err      error
	}{
		{name: "given known restaurant should return its menu", input: "3", expected: []string{"m5", "m6"}},
		{name: "given unknown restaurant should return not found", input: "99", err: inErrors.ErrRestaurantNotFound},
	}

	svc := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := svc.FindMenuByRestaurantId(context.Background(), tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, err, inErrors.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, menuItemIds(actual))
		})
	}
}

func TestFindById(t *testing.T) {
	svc := newService()
	c := context.Background()

	restaurant, err := svc.FindRestaurantById(c, "1")
	require.NoError(t, err)
	assert.Equal(t, "Tokyo Sushi Bar", restaurant.Name)

	_, err = svc.FindRestaurantById(c, "nope")
	assert.ErrorIs(t, err, inErrors.ErrRestaurantNotFound)

	item, err := svc.FindMenuItemById(c, "m3")
	require.NoError(t, err)
	assert.Equal(t, "Margherita Pizza", item.Name)

	_, err = svc.FindMenuItemById(c, "m99")
	assert.ErrorIs(t, err, inErrors.ErrMenuItemNotFound)
}

func TestSearchRestaurants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		err      error
	}{
		{name: "given name fragment should match", input: "palace", expected: []string{"Burger Palace"}},
		{name: "given cuisine fragment should match", input: "ASIAN", expected: []string{"Tokyo Sushi Bar"}},
		{name: "given no match should return empty", input: "tacos", expected: []string{}},
		{name: "given empty query should fail validation", input: "", err: inErrors.ErrEmptyQuery},
		{name: "given blank query should fail validation", input: "   ", err: inErrors.ErrEmptyQuery},
	}

	svc := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := svc.SearchRestaurants(context.Background(), tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, err, inErrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, restaurantNames(actual))
		})
	}
}

func TestSearchMenuItems(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		err      error
	}{
		{name: "given name fragment should match", input: "tuna", expected: []string{"m2"}},
		{name: "given description fragment should match", input: "mozzarella", expected: []string{"m3", "m4"}},
		{name: "given category should match", input: "burgers", expected: []string{"m5", "m6"}},
		{name: "given no match should return empty", input: "ramen", expected: []string{}},
		{name: "given empty query should fail validation", input: "", err: inErrors.ErrEmptyQuery},
	}

	svc := newService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := svc.SearchMenuItems(context.Background(), tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, menuItemIds(actual))
		})
	}
}
