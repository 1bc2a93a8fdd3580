package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantagepointcrm/crm-api/internal/core/domain"
	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

// dummyHash is compared against when the username is unknown so both failure
// arms perform one bcrypt comparison and return the same error.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("vantagepoint-dummy"), bcrypt.DefaultCost)

// AuthService implements login and token-subject resolution over the
// credential store.
type AuthService struct {
	users  ports.UserRepository
	codec  *TokenCodec
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *TokenCodec, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn().Str("username", username).Msg("login attempt on inactive account")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Mint(user.Username, user.Role, user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
