package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

// UserRepository is the in-memory credential store. User provisioning happens
// out of band, so the record set is fixed after construction and reads only
// need the lock to stay safe against future extension.
type UserRepository struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
}

func NewUserRepository(users []*domain.User) *UserRepository {
	m := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		clone := *u
		m[u.ID] = &clone
	}
	return &UserRepository{users: m}
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) FindByManager(_ context.Context, managerID int64) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.User
	for _, u := range r.users {
		if u.IsActive && u.ManagerID != nil && *u.ManagerID == managerID {
			clone := *u
			out = append(out, &clone)
		}
	}
	sortByID(out)
	return out, nil
}

func (r *UserRepository) FindAgents(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.User
	for _, u := range r.users {
		if u.IsActive && u.Role == domain.RoleAgent {
			clone := *u
			out = append(out, &clone)
		}
	}
	sortByID(out)
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func sortByID(users []*domain.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
}
