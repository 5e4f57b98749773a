package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Cache     string    `json:"cache,omitempty"`
}

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// CachePinger wraps a redis ping so the handler does not depend on the client type
type CachePinger func(ctx context.Context) error

type HealthHandler struct {
	serviceName string
	version     string
	db          Pinger
	cache       CachePinger
}

func NewHealthHandler(serviceName, version string, db Pinger, cache CachePinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		cache:       cache,
	}
}

func probe(ctx context.Context, ping func(context.Context) error) string {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = probe(c.Request.Context(), h.db.Ping)
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = probe(c.Request.Context(), h.cache)
	}

	// a cache outage only degrades; calculations fall back to the database
	status := "healthy"
	if dbStatus == "down" {
		status = "unhealthy"
	} else if cacheStatus == "down" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
