package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxEmail    = "email"
	CtxUsername = "username"
	CtxRoles    = "roles"
)

// Auth validates the bearer token and injects the identity claims into
// the request context. Issuer and audience are verified against the
// values the issuer embeds at signing time.
func Auth(secret, issuer, audience string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.Unauthorized("missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.Unauthorized("invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			}, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return domain.Unauthorized("invalid or expired token")
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				return domain.Unauthorized("token missing subject")
			}

			c.Set(CtxUserID, sub)
			c.Set(CtxEmail, claims["email"])
			c.Set(CtxUsername, claims["name"])
			c.Set(CtxRoles, rolesClaim(claims))

			return next(c)
		}
	}
}

// rolesClaim extracts the repeated role entries from the token. JSON
// arrays decode as []interface{}, so each entry is converted back.
func rolesClaim(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}
