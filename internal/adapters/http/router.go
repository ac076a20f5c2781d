package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotebook/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotebook/internal/platform/config"
	"github.com/jsamuelsen/quotebook/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// ScopeQuotesWrite is required on every mutating route when auth is enabled.
const ScopeQuotesWrite = "quotes:write"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// ServiceName names the server spans and metrics.
	ServiceName string

	// AuthConfig enables header-based claims on mutating routes.
	AuthConfig *config.AuthConfig

	HealthHandler   *handlers.HealthHandler
	QuoteHandler    *handlers.QuoteHandler
	TransferHandler *handlers.TransferHandler

	// SyncHandler is nil when the sync agent is disabled.
	SyncHandler *handlers.SyncHandler

	// Timeout bounds every /api/v1 request. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry
//  5. Logging (skips /-/ endpoints)
//  6. Timeout (/api/v1 only)
//
// Route groups:
//   - /-/ (internal): health, build info and metrics, never authenticated
//   - /api/v1/: quote endpoints; writes are guarded when auth is enabled
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers the quote book endpoints.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	guard := writeGuard(cfg.AuthConfig)

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg, guard...)
	}

	if cfg.TransferHandler != nil {
		cfg.TransferHandler.RegisterTransferRoutes(rg, guard...)
	}

	if cfg.SyncHandler != nil {
		cfg.SyncHandler.RegisterSyncRoutes(rg, guard...)
	}
}

// writeGuard returns the middleware placed in front of mutating routes.
func writeGuard(authCfg *config.AuthConfig) []gin.HandlerFunc {
	if authCfg == nil || !authCfg.Enabled {
		return nil
	}

	return []gin.HandlerFunc{
		middleware.RequireAuth(authCfg),
		middleware.RequireScopes(authCfg, ScopeQuotesWrite),
	}
}
