package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"chamber/internal/shared/constants"
	"chamber/pkg/cache"
)

// LocationSource supplies the known location keys for ByLocation seeding.
// Satisfied by locations.Service.
type LocationSource interface {
	KnownSlugs(ctx context.Context) ([]string, error)
}

// Service defines the analytics service interface
type Service interface {
	GetBookingAnalytics(ctx context.Context, req Request) (json.RawMessage, error)
}

// service implements the Service interface
type service struct {
	repo         Repository
	locations    LocationSource
	cacheService cache.Service
}

// NewService creates a new analytics service instance. cacheService may be
// nil to disable the cache-aside layer; results are identical either way.
func NewService(repo Repository, locations LocationSource, cacheService cache.Service) Service {
	return &service{repo: repo, locations: locations, cacheService: cacheService}
}

// GetBookingAnalytics validates the request, then computes (or returns the
// cached copy of) one grouped summary. A single repository fetch feeds the
// reducers; there are no partial results.
func (s *service) GetBookingAnalytics(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cacheKey := constants.BuildAnalyticsKey(req.Type, req.Period, req.Demographic, req.Location)

	if s.cacheService != nil {
		var cached json.RawMessage
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	records, err := s.repo.GetBookingsWithUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings for analytics: %w", err)
	}

	var result interface{}
	switch req.Type {
	case TypeByTimePeriod:
		result = ByTimePeriod(records, req.Period)
	case TypeByDemographic:
		result = ByDemographic(records, req.Demographic)
	case TypeByLocation:
		known, err := s.locations.KnownSlugs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get known locations: %w", err)
		}
		result = ByLocation(records, known)
	case TypeRevenue:
		result = Revenue(records, req.Period, req.Location)
	case TypeSummary:
		result = Summarize(records)
	default:
		return nil, ErrInvalidRequest
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analytics result: %w", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, json.RawMessage(payload), constants.TTL_ANALYTICS); err != nil {
			slog.Warn("failed to cache analytics result", "key", cacheKey, "error", err)
		}
	}

	return payload, nil
}
