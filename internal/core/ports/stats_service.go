package ports

import (
	"context"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

// RoleStats summarises the leads visible to one identity. TeamPerformance and
// YourRank are populated for agents only: the map holds every agent's
// signed-up count keyed by username, and YourRank is the 1-based position of
// the caller's count in the descending count list (first matching position on
// ties, so tied agents share the best slot among equals).
type RoleStats struct {
	TotalLeads        int            `json:"total_leads"`
	PracticesSignedUp int            `json:"practices_signed_up"`
	ActiveLeads       int            `json:"active_leads"`
	ConversionRate    float64        `json:"conversion_rate"`
	TeamPerformance   map[string]int `json:"team_performance,omitempty"`
	YourRank          int            `json:"your_rank,omitempty"`
}

// StatsService computes role-scoped statistics.
type StatsService interface {
	RoleStats(ctx context.Context, identity *domain.User) (*RoleStats, error)
}
