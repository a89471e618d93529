package locations

import (
	"context"
	"fmt"
	"strings"

	"chamber/internal/shared/constants"
	"chamber/pkg/cache"
)

type Service interface {
	GetLocations(ctx context.Context) ([]Location, error)
	GetLocation(ctx context.Context, slug string) (*Location, error)
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error)

	// IsBookable reports whether a slug identifies a live site
	IsBookable(ctx context.Context, slug string) bool

	// KnownSlugs returns every site slug, live or not, for analytics seeding
	KnownSlugs(ctx context.Context) ([]string, error)

	Seed(ctx context.Context) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) GetLocations(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_LOCATIONS_LIST, constants.TTL_STATIC_LONG,
		func() (interface{}, error) {
			return s.repo.GetAll(ctx)
		}, &locations)
	if err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}
	return locations, nil
}

func (s *service) GetLocation(ctx context.Context, slug string) (*Location, error) {
	return s.repo.GetBySlug(ctx, normalizeSlug(slug))
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	location := &Location{
		Slug:       normalizeSlug(req.Slug),
		Name:       req.Name,
		City:       req.City,
		State:      req.State,
		Address:    req.Address,
		ChamberCap: req.ChamberCap,
		Active:     req.Active,
		ComingSoon: req.ComingSoon,
	}
	if location.ChamberCap <= 0 {
		location.ChamberCap = 4
	}

	if err := s.repo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	_ = s.cache.Delete(ctx, constants.CACHE_KEY_LOCATIONS_LIST)

	return location, nil
}

func (s *service) IsBookable(ctx context.Context, slug string) bool {
	location, err := s.repo.GetBySlug(ctx, normalizeSlug(slug))
	if err != nil {
		return false
	}
	return location.Active && !location.ComingSoon
}

func (s *service) KnownSlugs(ctx context.Context) ([]string, error) {
	locations, err := s.GetLocations(ctx)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(locations))
	for _, location := range locations {
		slugs = append(slugs, location.Slug)
	}
	return slugs, nil
}

func (s *service) Seed(ctx context.Context) error {
	return s.repo.Seed(ctx)
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
