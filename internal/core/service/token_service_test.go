package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

func TestNewTokenIssuer_MissingSecretIsFatalConfig(t *testing.T) {
	_, err := NewTokenIssuer("", "issuer", "audience", time.Hour)

	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestTokenIssuer_EmbedsIssuerAudienceAndExpiry(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "my-issuer", "my-audience", 0)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	account := &domain.Account{
		ID:       "acc-1",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{domain.RoleAdmin, domain.RoleUser},
	}

	token, err := issuer.Issue(account)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued.Add(time.Minute) }))
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}

	if claims["iss"] != "my-issuer" || claims["aud"] != "my-audience" {
		t.Fatalf("unexpected iss/aud: %v / %v", claims["iss"], claims["aud"])
	}
	exp, _ := claims["exp"].(float64)
	if int64(exp) != issued.Add(defaultTokenTTL).Unix() {
		t.Fatalf("expected expiry at issuance+%v, got %v", defaultTokenTTL, int64(exp))
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 2 {
		t.Fatalf("expected two role entries, got %v", claims["roles"])
	}
}

func TestTokenIssuer_TokenExpiresAfterWindow(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "iss", "aud", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer failed: %v", err)
	}
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(&domain.Account{ID: "acc-1", Roles: []string{domain.RoleUser}})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	_, err = jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued.Add(2 * time.Hour) }))
	if err == nil {
		t.Fatalf("expected expired-token error after the validity window")
	}
}
