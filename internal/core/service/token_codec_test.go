package service

import (
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec("secret", time.Hour, fixedClock(issued))

	token, err := codec.Mint("agent1", "agent", 3)
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty string")
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Username != "agent1" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if claims.Role != "agent" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.UserID != 3 {
		t.Fatalf("unexpected user id: %d", claims.UserID)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issued.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", got)
	}
}

func TestTokenCodec_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mintClock := fixedClock(issued)
	codec := NewTokenCodec("secret", time.Hour, mintClock)

	token, err := codec.Mint("agent1", "agent", 3)
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	// One second past expiry.
	later := NewTokenCodec("secret", time.Hour, fixedClock(issued.Add(time.Hour+time.Second)))
	if _, err := later.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenCodec_ValidJustBeforeExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec("secret", time.Hour, fixedClock(issued))

	token, err := codec.Mint("agent1", "agent", 3)
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	almost := NewTokenCodec("secret", time.Hour, fixedClock(issued.Add(time.Hour-time.Second)))
	if _, err := almost.Verify(token); err != nil {
		t.Fatalf("expected token still valid, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour, nil)
	token, err := codec.Mint("admin", "admin", 1)
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}

	other := NewTokenCodec("different-secret", time.Hour, nil)
	if _, err := other.Verify(token); !errors.Is(err, ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}

func TestTokenCodec_MalformedToken(t *testing.T) {
	codec := NewTokenCodec("secret", time.Hour, nil)
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestTokenCodec_Defaults(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	codec := NewTokenCodec("secret", 0, fixedClock(issued))

	token, err := codec.Mint("admin", "admin", 1)
	if err != nil {
		t.Fatalf("Mint returned error: %v", err)
	}
	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issued.Add(time.Hour)) {
		t.Fatalf("expected one hour default ttl, expiry %v", got)
	}
}
