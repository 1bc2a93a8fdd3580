package ports

import (
	"context"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

// UserRepository defines read access to the user records. Provisioning is
// handled out of band, so no mutation operations are exposed.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// FindByManager returns the active users reporting to managerID,
	// ordered by ascending ID.
	FindByManager(ctx context.Context, managerID int64) ([]*domain.User, error)
	// FindAgents returns all active users with the agent role, ordered by
	// ascending ID.
	FindAgents(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
