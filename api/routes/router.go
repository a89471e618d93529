// api/routes/router.go
package routes

import (
	"chamber/internal/analytics"
	"chamber/internal/auth"
	"chamber/internal/bookings"
	"chamber/internal/locations"
	"chamber/internal/shared/config"
	"chamber/internal/shared/database"
	"chamber/internal/slots"
	"chamber/internal/wizard"
	"chamber/pkg/cache"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     bookings.Notifier

	// Shared services wired once and reused across route groups
	locationService locations.Service
	bookingService  bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier bookings.Notifier) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cache.NewService(db.GetRedisClient()),
		notifier:     notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Locations first: the wizard, slot, and analytics groups all
		// depend on the location service
		r.setupLocationRoutes(api)

		r.setupBookingRoutes(api)
		r.setupSlotRoutes(api)
		r.setupWizardRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "chamber-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "chamber-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	authRouter.SetupRoutes(rg)
}

// setupLocationRoutes configures treatment location routes
func (r *Router) setupLocationRoutes(rg *gin.RouterGroup) {
	locationRepo := locations.NewRepository(r.db.GetPostgreSQL())
	r.locationService = locations.NewService(locationRepo, r.cacheService)
	locationController := locations.NewController(r.locationService)

	locations.SetupLocationRoutes(rg, locationController)
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.bookingService = bookings.NewService(bookingRepo, r.cacheService, r.notifier)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupSlotRoutes configures chamber slot availability routes
func (r *Router) setupSlotRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	slotService := slots.NewService(bookingRepo, r.locationService, r.cacheService)
	slotController := slots.NewController(slotService)

	slots.SetupSlotRoutes(rg, slotController)
}

// setupWizardRoutes configures the booking wizard routes
func (r *Router) setupWizardRoutes(rg *gin.RouterGroup) {
	store := wizard.NewRedisStore(r.cacheService)
	wizardService := wizard.NewService(store, r.bookingService, r.locationService)
	wizardController := wizard.NewController(wizardService, r.config)

	wizard.SetupWizardRoutes(rg, wizardController)
}

// setupAnalyticsRoutes configures booking analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.locationService, r.cacheService)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
