package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// LeadRepository holds the lead collection and its ID counter in process
// memory. A single RWMutex serializes mutations, preserving the monotonic-ID
// and no-duplicate-assignment invariants under concurrent requests.
type LeadRepository struct {
	mu     sync.RWMutex
	leads  []*domain.Lead
	nextID int64
}

// NewLeadRepository seeds the store with the given leads. The counter starts
// above the highest seeded ID so seeded IDs are never reused.
func NewLeadRepository(seed []*domain.Lead) *LeadRepository {
	r := &LeadRepository{nextID: 1}
	for _, l := range seed {
		clone := *l
		r.leads = append(r.leads, &clone)
		if l.ID >= r.nextID {
			r.nextID = l.ID + 1
		}
	}
	return r
}

func (r *LeadRepository) Create(_ context.Context, lead *domain.Lead) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *lead
	clone.ID = r.nextID
	r.nextID++
	r.leads = append(r.leads, &clone)

	out := clone
	return &out, nil
}

func (r *LeadRepository) FindByID(_ context.Context, id int64) (*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.leads {
		if l.ID == id {
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *LeadRepository) List(_ context.Context, filter ports.LeadFilter) ([]*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if !matches(l, filter) {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *LeadRepository) AssignUnassigned(_ context.Context, agentID int64, maxCount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var unassigned []*domain.Lead
	for _, l := range r.leads {
		if l.AssignedUserID == nil {
			unassigned = append(unassigned, l)
		}
	}
	// Stable: ties in score keep original relative order.
	sort.SliceStable(unassigned, func(i, j int) bool {
		return unassigned[i].Score > unassigned[j].Score
	})

	now := time.Now().UTC()
	assigned := 0
	for _, l := range unassigned {
		if assigned == maxCount {
			break
		}
		id := agentID
		l.AssignedUserID = &id
		l.UpdatedAt = now
		assigned++
	}
	return assigned, nil
}

func (r *LeadRepository) MarkDocsSent(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.leads {
		if l.ID == id {
			l.DocsSent = true
			l.UpdatedAt = at
			return nil
		}
	}
	return domain.ErrLeadNotFound
}

func (r *LeadRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.leads)), nil
}

func matches(lead *domain.Lead, filter ports.LeadFilter) bool {
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
