package jwtauth

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v4"
	"github.com/riskibarqy/gamemaster/internal/domain/user"
	"github.com/riskibarqy/gamemaster/internal/usecase"
)

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type accessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Provider issues and verifies HS256 bearer tokens.
type Provider struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewProvider(cfg Config) (*Provider, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.Newf("jwt ttl must be > 0, got %s", cfg.TTL)
	}

	return &Provider{
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

func (p *Provider) IssueAccessToken(_ context.Context, u user.User) (string, time.Time, error) {
	now := p.now().UTC()
	expiresAt := now.Add(p.ttl)

	claims := accessClaims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign access token")
	}
	return signed, expiresAt, nil
}

// VerifyAccessToken validates signature, expiry and issuer and returns the
// principal carried in the claims. Every failure is ErrInvalidToken.
func (p *Provider) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, usecase.ErrMissingToken
	}

	claims := &accessClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}); err != nil {
		return user.Principal{}, invalid(err)
	}

	// Time claims are checked against the provider clock.
	if !claims.VerifyExpiresAt(p.now(), true) {
		return user.Principal{}, invalid(errors.New("token is expired"))
	}
	if p.issuer != "" && !claims.VerifyIssuer(p.issuer, true) {
		return user.Principal{}, invalid(errors.Newf("unexpected issuer %q", claims.Issuer))
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return user.Principal{}, invalid(errors.New("user_id claim is empty"))
	}
	role := user.Role(claims.Role)
	if !role.Valid() {
		return user.Principal{}, invalid(errors.Newf("unknown role %q", claims.Role))
	}

	return user.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}

func invalid(cause error) error {
	return errors.WithSecondaryError(usecase.ErrInvalidToken, cause)
}
