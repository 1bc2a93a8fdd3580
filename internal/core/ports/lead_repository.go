package ports

import (
	"context"
	"time"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

// LeadFilter scopes a lead listing. A nil AssignedTo means no assignment
// filter (admin view); an empty non-nil slice matches nothing (a manager with
// no subordinates sees no leads).
type LeadFilter struct {
	AssignedTo []int64
}

// LeadRepository owns the mutable lead collection and the ID counter.
// Implementations must serialize mutations so IDs stay monotonic and a lead is
// never assigned twice inside one bulk pass.
type LeadRepository interface {
	// Create persists the lead, assigning a fresh ID strictly greater than
	// any previously assigned one, and returns the stored record.
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	FindByID(ctx context.Context, id int64) (*domain.Lead, error)
	// List returns leads matching the filter, ordered by ascending ID.
	List(ctx context.Context, filter LeadFilter) ([]*domain.Lead, error)
	// AssignUnassigned assigns up to maxCount currently-unassigned leads to
	// agentID, highest score first (stable on ties), and returns how many
	// were actually assigned.
	AssignUnassigned(ctx context.Context, agentID int64, maxCount int) (int, error)
	// MarkDocsSent flips the docs_sent flag and bumps updated_at.
	MarkDocsSent(ctx context.Context, id int64, at time.Time) error
	Count(ctx context.Context) (int64, error)
}
