package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

const (
	defaultScore    = 75
	defaultPriority = domain.PriorityMedium
	defaultStatus   = domain.StatusNew
)

// LeadService implements the role-scoped lead use cases.
type LeadService struct {
	leads  ports.LeadRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewLeadService(leads ports.LeadRepository, users ports.UserRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{leads: leads, users: users, logger: logger}
}

// visibilityFilter is the single visibility predicate: every listing and
// counting path must go through it.
func (s *LeadService) visibilityFilter(ctx context.Context, identity *domain.User) (ports.LeadFilter, error) {
	switch identity.Role {
	case domain.RoleAdmin:
		return ports.LeadFilter{}, nil
	case domain.RoleManager:
		subs, err := s.users.FindByManager(ctx, identity.ID)
		if err != nil {
			return ports.LeadFilter{}, err
		}
		ids := make([]int64, 0, len(subs))
		for _, u := range subs {
			ids = append(ids, u.ID)
		}
		// Non-nil empty slice: a manager without subordinates sees nothing.
		return ports.LeadFilter{AssignedTo: ids}, nil
	default:
		return ports.LeadFilter{AssignedTo: []int64{identity.ID}}, nil
	}
}

func (s *LeadService) VisibleLeads(ctx context.Context, identity *domain.User) ([]*domain.Lead, error) {
	filter, err := s.visibilityFilter(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.leads.List(ctx, filter)
}

func (s *LeadService) CreateLead(ctx context.Context, identity *domain.User, in ports.CreateLeadInput) (*ports.CreateLeadResult, error) {
	if in.PracticeName == "" {
		return nil, domain.FieldRequired("practice_name")
	}
	if in.OwnerName == "" {
		return nil, domain.FieldRequired("owner_name")
	}
	if in.PracticePhone == "" {
		return nil, domain.FieldRequired("practice_phone")
	}

	score := defaultScore
	if in.Score != nil {
		score = *in.Score
	}
	if score < 0 || score > 100 {
		return nil, &domain.ValidationError{Field: "score", Reason: "must be between 0 and 100"}
	}

	priority := defaultPriority
	if in.Priority != "" {
		priority = domain.LeadPriority(in.Priority)
	}
	status := defaultStatus
	if in.Status != "" {
		status = domain.LeadStatus(in.Status)
	}

	assigneeID, err := s.resolveAssignee(ctx, identity, in.AssignedUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lead := &domain.Lead{
		PracticeName:   in.PracticeName,
		OwnerName:      in.OwnerName,
		PracticePhone:  in.PracticePhone,
		Email:          in.Email,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		ZipCode:        in.ZipCode,
		Specialty:      in.Specialty,
		Score:          score,
		Priority:       priority,
		Status:         status,
		AssignedUserID: &assigneeID,
		DocsSent:       false,
		NPI:            in.NPI,
		PTAN:           in.PTAN,
		EINTIN:         in.EINTIN,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      identity.Username,
	}

	created, err := s.leads.Create(ctx, lead)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create lead")
		return nil, err
	}

	assignee, err := s.users.FindByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("lead_id", created.ID).
		Str("practice", created.PracticeName).
		Str("assigned_to", assignee.Username).
		Str("created_by", identity.Username).
		Msg("lead created")

	return &ports.CreateLeadResult{Lead: created, AssignedTo: assignee}, nil
}

// resolveAssignee applies the placement policy: an explicit assignee must be
// an existing active user; otherwise agents take the lead themselves, managers
// hand it to their first subordinate agent, and admins to the first agent in
// enumeration order, each falling back to self.
func (s *LeadService) resolveAssignee(ctx context.Context, identity *domain.User, explicit *int64) (int64, error) {
	if explicit != nil {
		u, err := s.users.FindByID(ctx, *explicit)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return 0, &domain.ValidationError{Field: "assigned_user_id", Reason: "must reference an existing active user"}
			}
			return 0, err
		}
		if !u.IsActive {
			return 0, &domain.ValidationError{Field: "assigned_user_id", Reason: "must reference an existing active user"}
		}
		return u.ID, nil
	}

	switch identity.Role {
	case domain.RoleAgent:
		return identity.ID, nil
	case domain.RoleManager:
		subs, err := s.users.FindByManager(ctx, identity.ID)
		if err != nil {
			return 0, err
		}
		if len(subs) > 0 {
			return subs[0].ID, nil
		}
		return identity.ID, nil
	default:
		agents, err := s.users.FindAgents(ctx)
		if err != nil {
			return 0, err
		}
		if len(agents) > 0 {
			return agents[0].ID, nil
		}
		return identity.ID, nil
	}
}

func (s *LeadService) BulkAssign(ctx context.Context, agentID int64, maxCount int) (int, error) {
	if maxCount <= 0 {
		return 0, &domain.ValidationError{Field: "max_count", Reason: "must be greater than zero"}
	}

	target, err := s.users.FindByID(ctx, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, domain.ErrInvalidAssignee
		}
		return 0, err
	}
	if !target.IsActive {
		return 0, domain.ErrInvalidAssignee
	}

	assigned, err := s.leads.AssignUnassigned(ctx, agentID, maxCount)
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("agent_id", agentID).
		Int("assigned", assigned).
		Int("requested", maxCount).
		Msg("bulk assignment completed")

	return assigned, nil
}

func (s *LeadService) PrepareDocsSend(ctx context.Context, identity *domain.User, leadID int64) (ports.SendDocsJob, error) {
	lead, err := s.leads.FindByID(ctx, leadID)
	if err != nil {
		return ports.SendDocsJob{}, err
	}

	filter, err := s.visibilityFilter(ctx, identity)
	if err != nil {
		return ports.SendDocsJob{}, err
	}
	if !leadVisible(lead, filter) {
		// Invisible leads read as absent so the response does not reveal
		// their existence to out-of-scope callers.
		return ports.SendDocsJob{}, domain.ErrLeadNotFound
	}
	if lead.DocsSent {
		return ports.SendDocsJob{}, domain.ErrDocsAlreadySent
	}

	return ports.SendDocsJob{LeadID: lead.ID, RequestedBy: identity.Username}, nil
}

func leadVisible(lead *domain.Lead, filter ports.LeadFilter) bool {
	if filter.AssignedTo == nil {
		return true
	}
	if lead.AssignedUserID == nil {
		return false
	}
	for _, id := range filter.AssignedTo {
		if *lead.AssignedUserID == id {
			return true
		}
	}
	return false
}
