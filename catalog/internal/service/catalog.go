package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/catalog/internal/otel"
	"github.com/Alturino/foodhub/catalog/internal/repository"
	"github.com/Alturino/foodhub/catalog/pkg/response"
	inErrors "github.com/Alturino/foodhub/internal/errors"
	"github.com/Alturino/foodhub/internal/log"
	inOtel "github.com/Alturino/foodhub/internal/otel"
)

const CategoryAll = "all"

type CatalogService struct {
	repo *repository.CatalogRepository
}

func NewCatalogService(repo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// FindRestaurants returns every restaurant whose cuisine contains category, ignoring case.
// An empty category or "all" disables the filter.
func (s *CatalogService) FindRestaurants(
	c context.Context,
	category string,
) ([]response.Restaurant, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindRestaurants")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindRestaurants").
		Str(log.KeyCategory, category).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding restaurants").Logger()
	logger.Trace().Msg("finding restaurants")
	restaurants := s.repo.FindRestaurants(c)
	logger.Trace().Msg("found restaurants")

	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == CategoryAll {
		return restaurants, nil
	}

	logger = logger.With().Str(log.KeyProcess, "filtering restaurants by category").Logger()
	logger.Trace().Msg("filtering restaurants by category")
	filtered := []response.Restaurant{}
	for _, r := range restaurants {
		if strings.Contains(strings.ToLower(r.Cuisine), category) {
			filtered = append(filtered, r)
		}
	}
	logger.Trace().Msgf("filtered %d restaurants by category", len(filtered))

	return filtered, nil
}

func (s *CatalogService) FindRestaurantById(
	c context.Context,
	restaurantId string,
) (response.Restaurant, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindRestaurantById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindRestaurantById").
		Str(log.KeyRestaurantID, restaurantId).
		Str(log.KeyProcess, "finding restaurant").
		Logger()

	logger.Trace().Msg("finding restaurant")
	restaurant, ok := s.repo.FindRestaurantById(c, restaurantId)
	if !ok {
		err := fmt.Errorf("failed finding restaurantId=%s with error=%w", restaurantId, inErrors.ErrRestaurantNotFound)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.Restaurant{}, err
	}
	logger.Trace().Msg("found restaurant")

	return restaurant, nil
}

// FindMenuByRestaurantId returns the menu of a known restaurant.
func (s *CatalogService) FindMenuByRestaurantId(
	c context.Context,
	restaurantId string,
) ([]response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindMenuByRestaurantId")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindMenuByRestaurantId").
		Str(log.KeyRestaurantID, restaurantId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding restaurant").Logger()
	logger.Trace().Msg("finding restaurant")
	c = logger.WithContext(c)
	if _, err := s.FindRestaurantById(c, restaurantId); err != nil {
		inOtel.RecordError(err, span)
		return nil, err
	}
	logger.Trace().Msg("found restaurant")

	logger = logger.With().Str(log.KeyProcess, "finding menu items").Logger()
	logger.Trace().Msg("finding menu items")
	items := s.repo.FindMenuItemsByRestaurantId(c, restaurantId)
	logger.Trace().Msgf("found %d menu items", len(items))

	return items, nil
}

func (s *CatalogService) FindMenuItemById(
	c context.Context,
	menuItemId string,
) (response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindMenuItemById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService FindMenuItemById").
		Str(log.KeyMenuItemID, menuItemId).
		Str(log.KeyProcess, "finding menu item").
		Logger()

	logger.Trace().Msg("finding menu item")
	item, ok := s.repo.FindMenuItemById(c, menuItemId)
	if !ok {
		err := fmt.Errorf("failed finding menuItemId=%s with error=%w", menuItemId, inErrors.ErrMenuItemNotFound)
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}
	logger.Trace().Msg("found menu item")

	return item, nil
}

func (s *CatalogService) FindMenuItems(c context.Context) ([]response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindMenuItems")
	defer span.End()

	return s.repo.FindMenuItems(c), nil
}

// SearchRestaurants matches query against restaurant name and cuisine. No match yields an empty
// slice, never a not found error.
func (s *CatalogService) SearchRestaurants(
	c context.Context,
	query string,
) ([]response.Restaurant, error) {
	c, span := otel.Tracer.Start(c, "CatalogService SearchRestaurants")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService SearchRestaurants").
		Str(log.KeyQuery, query).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating query").Logger()
	q, err := normalizeQuery(query)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "searching restaurants").Logger()
	logger.Trace().Msg("searching restaurants")
	result := []response.Restaurant{}
	for _, r := range s.repo.FindRestaurants(c) {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Cuisine), q) {
			result = append(result, r)
		}
	}
	logger.Trace().Msgf("found %d restaurants", len(result))

	return result, nil
}

// SearchMenuItems matches query against menu item name, description and category.
func (s *CatalogService) SearchMenuItems(
	c context.Context,
	query string,
) ([]response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "CatalogService SearchMenuItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogService SearchMenuItems").
		Str(log.KeyQuery, query).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating query").Logger()
	q, err := normalizeQuery(query)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "searching menu items").Logger()
	logger.Trace().Msg("searching menu items")
	result := []response.MenuItem{}
	for _, it := range s.repo.FindMenuItems(c) {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(it.Category), q) {
			result = append(result, it)
		}
	}
	logger.Trace().Msgf("found %d menu items", len(result))

	return result, nil
}

func normalizeQuery(query string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", inErrors.ErrEmptyQuery
	}
	return q, nil
}
