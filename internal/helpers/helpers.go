package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginClaims are the claims read from a third-party identity token.
type LoginClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseTokenClaims reads the claims of a JWT without checking its
// signature. The issuer already validated it; only the dates are used.
func ParseTokenClaims(tokenStr string) (*LoginClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, &LoginClaims{})
	if err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}
	claims, ok := token.Claims.(*LoginClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// Issued returns the iat claim, or the zero time when absent.
func (lc *LoginClaims) Issued() time.Time {
	if lc.IssuedAt == nil {
		return time.Time{}
	}
	return lc.IssuedAt.UTC()
}

// Expires returns the exp claim, or the zero time when absent.
func (lc *LoginClaims) Expires() time.Time {
	if lc.ExpiresAt == nil {
		return time.Time{}
	}
	return lc.ExpiresAt.UTC()
}

// CleanParam strips whitespace and stray quotes clients leave around path
// and query values.
func CleanParam(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}
