package ports

import (
	"context"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

// CreateLeadInput carries all caller-supplied data for a new lead. Pointer
// fields distinguish "not supplied" from zero values so defaults apply only
// when the caller omitted them.
type CreateLeadInput struct {
	PracticeName   string
	OwnerName      string
	PracticePhone  string
	Email          string
	Address        string
	City           string
	State          string
	ZipCode        string
	Specialty      string
	Score          *int
	Priority       string
	Status         string
	AssignedUserID *int64
	NPI            string
	PTAN           string
	EINTIN         string
}

// CreateLeadResult pairs the stored lead with the user it was assigned to.
type CreateLeadResult struct {
	Lead       *domain.Lead
	AssignedTo *domain.User
}

// LeadService defines the role-scoped lead use cases. Every listing or
// counting path goes through VisibleLeads so the visibility predicate cannot
// diverge between endpoints.
type LeadService interface {
	// VisibleLeads returns the leads identity may see, ascending by ID:
	// admins see all leads, managers the leads assigned to their
	// subordinates, agents only their own.
	VisibleLeads(ctx context.Context, identity *domain.User) ([]*domain.Lead, error)
	CreateLead(ctx context.Context, identity *domain.User, in CreateLeadInput) (*CreateLeadResult, error)
	// BulkAssign hands up to maxCount unassigned leads (highest score first)
	// to the given agent and returns the number assigned.
	BulkAssign(ctx context.Context, agentID int64, maxCount int) (int, error)
	// PrepareDocsSend validates that identity may send partner documents for
	// the lead and returns the job to enqueue.
	PrepareDocsSend(ctx context.Context, identity *domain.User, leadID int64) (SendDocsJob, error)
}
