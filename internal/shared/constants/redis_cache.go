package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the chamber application.
// Pattern: chamber:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	// Static data (locations rarely change)
	TTL_STATIC_LONG = 24 * time.Hour

	// Analytics aggregations (recomputed cheaply, short TTL)
	TTL_ANALYTICS = 10 * time.Minute

	// Per-date slot availability
	TTL_SLOT_AVAILABILITY = 2 * time.Minute

	// Wizard sessions are extended on every touch
	TTL_WIZARD_SESSION = 45 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "chamber"
)

const (
	CACHE_KEY_LOCATIONS_LIST = CACHE_PREFIX + ":locations:list"
	CACHE_KEY_ANALYTICS      = CACHE_PREFIX + ":analytics:bookings" // + :type:period:demographic:location
	CACHE_KEY_SLOTS          = CACHE_PREFIX + ":slots:date:"        // + YYYY-MM-DD
	CACHE_KEY_WIZARD_SESSION = CACHE_PREFIX + ":wizard:session:"    // + session uuid
)

// BuildAnalyticsKey builds the cache key for one analytics request shape
func BuildAnalyticsKey(reqType, period, demographic, location string) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", CACHE_KEY_ANALYTICS, reqType, period, demographic, location)
}

// BuildSlotsKey builds the cache key for a date's slot availability
func BuildSlotsKey(date string) string {
	return CACHE_KEY_SLOTS + date
}

// BuildWizardSessionKey builds the cache key for a wizard session
func BuildWizardSessionKey(sessionID string) string {
	return CACHE_KEY_WIZARD_SESSION + sessionID
}
