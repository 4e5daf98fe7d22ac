package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

const defaultTokenTTL = 2 * time.Hour

// TokenIssuer signs HS256 session tokens with a fixed validity window.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer validates the signing configuration and returns an
// issuer. A missing secret is a startup-time failure: callers must treat
// the returned config error as fatal, not retry it per request.
func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, domain.ConfigMissing("jwt signing key is not configured")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Issue produces a signed token for the account. Claims carry the
// subject id, email, username and every assigned role as a separate
// entry; expiry is issuance time plus the configured window.
func (t *TokenIssuer) Issue(account *domain.Account) (string, error) {
	now := t.now().UTC()

	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"name":  account.Username,
		"roles": account.Roles,
		"iss":   t.issuer,
		"aud":   t.audience,
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}
