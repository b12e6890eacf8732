package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const probeTimeout = 3 * time.Second

// ChainProbe reports whether the chain RPC endpoint is reachable.
type ChainProbe func(ctx context.Context) error

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db    *sql.DB
	rdb   *redis.Client
	chain ChainProbe
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *sql.DB, rdb *redis.Client, chain ChainProbe) *HealthHandler {
	return &HealthHandler{
		db:    db,
		rdb:   rdb,
		chain: chain,
	}
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyResponse represents readiness check response
type ReadyResponse struct {
	Status string `json:"status" example:"ok"`
	DB     string `json:"db" example:"ok"`
	Redis  string `json:"redis" example:"ok"`
	Chain  string `json:"chain" example:"ok"`
}

// Health godoc
// @Summary Health check
// @Description Returns server health status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness check
// @Description Returns server readiness including database, Redis and chain RPC connectivity. Redis is a cache here, so losing it only degrades the status; database or chain failure makes the service unready.
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	response := ReadyResponse{
		Status: "ok",
		DB:     "ok",
		Redis:  "ok",
		Chain:  "ok",
	}
	statusCode := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		response.DB = "error"
		response.Status = "unready"
		statusCode = http.StatusServiceUnavailable
	}

	if h.chain != nil {
		if err := h.chain(ctx); err != nil {
			response.Chain = "error"
			response.Status = "unready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	// Redis is advisory; readiness does not depend on it.
	if err := h.rdb.Ping(ctx).Err(); err != nil {
		response.Redis = "error"
		if response.Status == "ok" {
			response.Status = "degraded"
		}
	}

	c.JSON(statusCode, response)
}
