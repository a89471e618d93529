package wizard

import (
	"context"
	"errors"
	"fmt"

	"chamber/internal/shared/constants"
	"chamber/pkg/cache"

	"github.com/google/uuid"
)

// Store persists wizard sessions between requests
type Store interface {
	Save(ctx context.Context, machine *Machine) error
	Get(ctx context.Context, sessionID uuid.UUID) (*Machine, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// redisStore keeps sessions as TTL'd JSON blobs in Redis. An idle session
// simply expires; there is no cleanup job.
type redisStore struct {
	cache cache.Service
}

func NewRedisStore(cacheService cache.Service) Store {
	return &redisStore{cache: cacheService}
}

func (s *redisStore) Save(ctx context.Context, machine *Machine) error {
	key := constants.BuildWizardSessionKey(machine.SessionID.String())
	if err := s.cache.Set(ctx, key, machine, constants.TTL_WIZARD_SESSION); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, sessionID uuid.UUID) (*Machine, error) {
	key := constants.BuildWizardSessionKey(sessionID.String())

	var machine Machine
	err := s.cache.Get(ctx, key, &machine)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load wizard session: %w", err)
	}
	return &machine, nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return s.cache.Delete(ctx, constants.BuildWizardSessionKey(sessionID.String()))
}
