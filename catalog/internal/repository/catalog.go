package repository

import (
	"context"
	"slices"

	"github.com/Alturino/foodhub/catalog/internal/otel"
	"github.com/Alturino/foodhub/catalog/pkg/response"
)

// CatalogRepository is a read-only catalog. It is never mutated after construction, so reads
// need no locking.
type CatalogRepository struct {
	restaurants []response.Restaurant
	menuItems   []response.MenuItem
}

// NewCatalogRepository returns a repository seeded with the default restaurants and menu.
func NewCatalogRepository() *CatalogRepository {
	return NewCatalogRepositoryWith(seedRestaurants(), seedMenuItems())
}

func NewCatalogRepositoryWith(
	restaurants []response.Restaurant,
	menuItems []response.MenuItem,
) *CatalogRepository {
	return &CatalogRepository{
		restaurants: slices.Clone(restaurants),
		menuItems:   slices.Clone(menuItems),
	}
}

func (r *CatalogRepository) FindRestaurants(c context.Context) []response.Restaurant {
	_, span := otel.Tracer.Start(c, "CatalogRepository FindRestaurants")
	defer span.End()

	return slices.Clone(r.restaurants)
}

func (r *CatalogRepository) FindRestaurantById(
	c context.Context,
	id string,
) (response.Restaurant, bool) {
	_, span := otel.Tracer.Start(c, "CatalogRepository FindRestaurantById")
	defer span.End()

	i := slices.IndexFunc(r.restaurants, func(it response.Restaurant) bool { return it.ID == id })
	if i < 0 {
		return response.Restaurant{}, false
	}
	return r.restaurants[i], true
}

func (r *CatalogRepository) FindMenuItems(c context.Context) []response.MenuItem {
	_, span := otel.Tracer.Start(c, "CatalogRepository FindMenuItems")
	defer span.End()

	return slices.Clone(r.menuItems)
}

func (r *CatalogRepository) FindMenuItemsByRestaurantId(
	c context.Context,
	restaurantId string,
) []response.MenuItem {
	_, span := otel.Tracer.Start(c, "CatalogRepository FindMenuItemsByRestaurantId")
	defer span.End()

	items := []response.MenuItem{}
	for _, it := range r.menuItems {
		if it.RestaurantID == restaurantId {
			items = append(items, it)
		}
	}
	return items
}

func (r *CatalogRepository) FindMenuItemById(
	c context.Context,
	id string,
) (response.MenuItem, bool) {
	_, span := otel.Tracer.Start(c, "CatalogRepository FindMenuItemById")
	defer span.End()

	i := slices.IndexFunc(r.menuItems, func(it response.MenuItem) bool { return it.ID == id })
	if i < 0 {
		return response.MenuItem{}, false
	}
	return r.menuItems[i], true
}
