package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

const serviceVersion = "2.0.0"

// HealthHandler handles GET /health, the liveness probe with record counts.
type HealthHandler struct {
	users ports.UserRepository
	leads ports.LeadRepository
}

func NewHealthHandler(users ports.UserRepository, leads ports.LeadRepository) *HealthHandler {
	return &HealthHandler{users: users, leads: leads}
}

type healthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	LeadsCount int64  `json:"leads_count"`
	UsersCount int64  `json:"users_count"`
	Timestamp  string `json:"timestamp"`
}

// Liveness reports the process is alive and how much data it is serving.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	ctx := c.Request().Context()

	leadsCount, err := h.leads.Count(ctx)
	if err != nil {
		return err
	}
	usersCount, err := h.users.Count(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:     "healthy",
		Service:    "VantagePoint CRM API",
		Version:    serviceVersion,
		LeadsCount: leadsCount,
		UsersCount: usersCount,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessHandler handles GET /health/ready. It checks MongoDB and Redis
// connectivity before declaring the service ready.
// Either dependency may be absent (memory store mode, no dedup cache); absent
// dependencies are skipped, not failed.
type ReadinessHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewReadinessHandler(db *mongo.Database, rdb *redis.Client) *ReadinessHandler {
	return &ReadinessHandler{mongo: db, redis: rdb}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	if h.mongo != nil {
		if err := h.mongo.Client().Ping(ctx, nil); err != nil {
			deps["mongodb"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["mongodb"] = dependencyStatus{Status: "ok"}
		}
	}

	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
