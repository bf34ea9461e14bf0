package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

func newTestProvider(t *testing.T, now time.Time) *Provider {
	t.Helper()
	p, err := NewProvider(Config{Secret: "test-secret", Issuer: "gamemaster", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	p.now = func() time.Time { return now }
	return p
}

func TestProvider_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p := newTestProvider(t, now)

	token, expiresAt, err := p.IssueAccessToken(context.Background(), user.User{ID: "user-1", Email: "ann@example.com", Role: user.RoleSiteAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", expiresAt)
	}

	principal, err := p.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID != "user-1" || principal.Role != user.RoleSiteAdmin || principal.Email != "ann@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestProvider_VerifyRejects(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	p := newTestProvider(t, now)
	valid, _, err := p.IssueAccessToken(context.Background(), user.User{ID: "user-1", Role: user.RolePlayer})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	expired := newTestProvider(t, now.Add(2*time.Hour))

	other, err := NewProvider(Config{Secret: "other-secret", Issuer: "gamemaster", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	other.now = p.now
	forged, _, err := other.IssueAccessToken(context.Background(), user.User{ID: "user-1", Role: user.RoleSiteAdmin})
	if err != nil {
		t.Fatalf("issue forged token: %v", err)
	}

	unknownRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		UserID: "user-1",
		Role:   "ROOT",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gamemaster",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	tests := []struct {
		name     string
		provider *Provider
		token    string
	}{
		{name: "expired", provider: expired, token: valid},
		{name: "wrong secret", provider: p, token: forged},
		{name: "garbage", provider: p, token: "not-a-jwt"},
		{name: "unknown role", provider: p, token: unknownRole},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.provider.VerifyAccessToken(context.Background(), tc.token)
			if !errors.Is(err, usecase.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected unauthorized category, got %v", err)
			}
		})
	}
}

func TestProvider_VerifyEmptyToken(t *testing.T) {
	p := newTestProvider(t, time.Now())
	if _, err := p.VerifyAccessToken(context.Background(), "  "); !errors.Is(err, usecase.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestNewProvider_RequiresSecret(t *testing.T) {
	if _, err := NewProvider(Config{TTL: time.Hour}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewProvider(Config{Secret: "s"}); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)
	hash, err := h.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := h.Compare(hash, "correct horse"); err != nil {
		t.Fatalf("compare matching password: %v", err)
	}
	if err := h.Compare(hash, "wrong horse"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
