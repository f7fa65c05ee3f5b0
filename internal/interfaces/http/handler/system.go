package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

// DatabaseStatsSource reports connection pool statistics for the
// status endpoint
type DatabaseStatsSource interface {
	Stats() (persistence.ConnectionStats, error)
}

// SystemHandler serves the service status endpoint
type SystemHandler struct {
	BaseHandler
	serviceName  string
	startedAt    time.Time
	cacheMetrics *cache.Metrics
	dbStats      DatabaseStatsSource
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(serviceName string, cacheMetrics *cache.Metrics, dbStats DatabaseStatsSource) *SystemHandler {
	return &SystemHandler{
		serviceName:  serviceName,
		startedAt:    time.Now(),
		cacheMetrics: cacheMetrics,
		dbStats:      dbStats,
	}
}

// RegisterRoutes registers system routes on the engine root
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.Status)
}

// SystemStatus is the status endpoint payload
type SystemStatus struct {
	Service       string                      `json:"service"`
	Status        string                      `json:"status"`
	UptimeSeconds int64                       `json:"uptime_seconds"`
	Cache         cache.MetricsSnapshot       `json:"cache"`
	Database      persistence.ConnectionStats `json:"database"`
}

// Status handles GET /
func (h *SystemHandler) Status(c *gin.Context) {
	// Pool stats are best effort; the endpoint stays up even when the
	// pool cannot be inspected
	dbStats, _ := h.dbStats.Stats()

	h.Success(c, SystemStatus{
		Service:       h.serviceName,
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Cache:         h.cacheMetrics.Snapshot(),
		Database:      dbStats,
	})
}
