package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// StatsHandler serves role-scoped statistics.
type StatsHandler struct {
	stats ports.StatsService
	auth  ports.AuthService
}

func NewStatsHandler(stats ports.StatsService, auth ports.AuthService) *StatsHandler {
	return &StatsHandler{stats: stats, auth: auth}
}

// Get handles GET /api/v1/stats.
//
// @Summary      Role-scoped lead statistics
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.RoleStats
// @Failure      401  {object}  errorDetail
// @Router       /api/v1/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c, h.auth)
	if err != nil {
		return err
	}

	stats, err := h.stats.RoleStats(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
