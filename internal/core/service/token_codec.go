package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenMalformed = errors.New("malformed token")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenSignature = errors.New("invalid token signature")

const defaultTokenTTL = time.Hour

// TokenClaims is the signed assertion bound to a bearer token.
type TokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenCodec mints and verifies HS256 bearer tokens. It holds no state beyond
// the shared secret; the clock is injectable so expiry behaviour is testable.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec. A nil now falls back to time.Now and a
// non-positive ttl falls back to one hour.
func NewTokenCodec(secret string, ttl time.Duration, now func() time.Time) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: now}
}

// Mint produces a signed token asserting the identity until now+ttl.
func (c *TokenCodec) Mint(username, role string, userID int64) (string, error) {
	issued := c.now().UTC()
	claims := TokenClaims{
		Username: username,
		Role:     role,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(c.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token, returning its claims. Failures map to
// ErrTokenMalformed, ErrTokenExpired or ErrTokenSignature.
func (c *TokenCodec) Verify(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
