package service

import (
	"context"
	"math"
	"sort"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// StatsService computes role-scoped statistics on top of the lead service's
// visibility predicate.
type StatsService struct {
	visibility ports.LeadService
	leads      ports.LeadRepository
	users      ports.UserRepository
}

func NewStatsService(visibility ports.LeadService, leads ports.LeadRepository, users ports.UserRepository) *StatsService {
	return &StatsService{visibility: visibility, leads: leads, users: users}
}

func (s *StatsService) RoleStats(ctx context.Context, identity *domain.User) (*ports.RoleStats, error) {
	visible, err := s.visibility.VisibleLeads(ctx, identity)
	if err != nil {
		return nil, err
	}

	stats := &ports.RoleStats{TotalLeads: len(visible)}
	for _, lead := range visible {
		if lead.Status.SignedUp() {
			stats.PracticesSignedUp++
		}
		if lead.Status.Active() {
			stats.ActiveLeads++
		}
	}
	stats.ConversionRate = conversionRate(stats.PracticesSignedUp, stats.TotalLeads)

	if identity.Role == domain.RoleAgent {
		if err := s.addTeamPerformance(ctx, stats); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// addTeamPerformance fills the per-agent signed-up counts and the caller's
// rank: counts sorted descending, rank = first position holding the caller's
// count, so tied agents share the best slot among equals.
func (s *StatsService) addTeamPerformance(ctx context.Context, stats *ports.RoleStats) error {
	agents, err := s.users.FindAgents(ctx)
	if err != nil {
		return err
	}
	all, err := s.leads.List(ctx, ports.LeadFilter{})
	if err != nil {
		return err
	}

	soldByAgent := make(map[int64]int, len(agents))
	for _, lead := range all {
		if lead.AssignedUserID == nil || !lead.Status.SignedUp() {
			continue
		}
		soldByAgent[*lead.AssignedUserID]++
	}

	perf := make(map[string]int, len(agents))
	counts := make([]int, 0, len(agents))
	for _, a := range agents {
		perf[a.Username] = soldByAgent[a.ID]
		counts = append(counts, soldByAgent[a.ID])
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	stats.TeamPerformance = perf
	stats.YourRank = len(counts)
	for i, c := range counts {
		if c == stats.PracticesSignedUp {
			stats.YourRank = i + 1
			break
		}
	}
	return nil
}

// conversionRate returns signed/total as a percentage rounded to one decimal,
// zero when total is zero.
func conversionRate(signed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(signed)/float64(total)*1000) / 10
}
