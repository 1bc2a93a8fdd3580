package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
)

type stubUserRepo struct {
	users []*domain.User
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByManager(_ context.Context, managerID int64) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.IsActive && u.ManagerID != nil && *u.ManagerID == managerID {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) FindAgents(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.IsActive && u.Role == domain.RoleAgent {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

func ptrInt64(v int64) *int64 { return &v }

func testUsers(t *testing.T) []*domain.User {
	hash := hashPassword(t, "admin123")
	return []*domain.User{
		{ID: 1, Username: "admin", Role: domain.RoleAdmin, PasswordHash: hash, IsActive: true},
		{ID: 2, Username: "manager1", Role: domain.RoleManager, PasswordHash: hash, IsActive: true},
		{ID: 3, Username: "agent1", Role: domain.RoleAgent, PasswordHash: hash, IsActive: true, ManagerID: ptrInt64(2)},
		{ID: 4, Username: "ghost", Role: domain.RoleAgent, PasswordHash: hash, IsActive: false},
	}
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	repo := &stubUserRepo{users: testUsers(t)}
	codec := NewTokenCodec("test-secret", time.Hour, nil)
	return NewAuthService(repo, codec, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(t)

	token, user, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.Username != "admin" || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}

	codec := NewTokenCodec("test-secret", time.Hour, nil)
	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("minted token did not verify: %v", err)
	}
	if claims.Username != "admin" || claims.Role != domain.RoleAdmin || claims.UserID != 1 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	if _, _, err := svc.Login(context.Background(), "admin", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, unknownErr := svc.Login(context.Background(), "nobody", "admin123")
	_, _, wrongPassErr := svc.Login(context.Background(), "admin", "nope")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Fatalf("failure arms must be indistinguishable: %v vs %v", unknownErr, wrongPassErr)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc := newTestAuthService(t)

	if _, _, err := svc.Login(context.Background(), "ghost", "admin123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive account, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(t)

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc := newTestAuthService(t)

	user, err := svc.CurrentUser(context.Background(), "agent1")
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if user.ID != 3 {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(context.Background(), "nobody"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown subject, got %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), "ghost"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive subject, got %v", err)
	}
}
