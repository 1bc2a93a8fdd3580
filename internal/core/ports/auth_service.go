package ports

import (
	"context"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

// AuthService authenticates credentials and resolves token subjects back to
// user records.
type AuthService interface {
	// Login verifies the password and returns a signed bearer token plus the
	// authenticated user. Unknown usernames, wrong passwords and inactive
	// accounts all fail with the same domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// CurrentUser resolves a verified token subject to its user record.
	// Unknown or deactivated subjects fail with domain.ErrInvalidCredentials.
	CurrentUser(ctx context.Context, username string) (*domain.User, error)
}
