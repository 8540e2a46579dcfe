// Package auth decides whether a request may proceed: it tells service
// credentials apart from user tokens, verifies user tokens and checks that
// mutating requests only touch the caller's own resources.
package auth

import (
	"crypto/subtle"
	"strings"
)

type CredentialKind int

const (
	// UserCredential is an end-user token that must be verified.
	UserCredential CredentialKind = iota
	// ServiceCredential is the shared secret used between our own services.
	ServiceCredential
)

// Credential is a bearer value already classified by kind.
type Credential struct {
	Kind  CredentialKind
	Token string
}

// ServiceSecret is kept apart from user tokens so the two are never compared
// by accident elsewhere.
type ServiceSecret struct {
	value []byte
}

func NewServiceSecret(secret string) ServiceSecret {
	return ServiceSecret{value: []byte(secret)}
}

// Matches compares in constant time. An empty secret matches nothing.
func (s ServiceSecret) Matches(token string) bool {
	if len(s.value) == 0 || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare(s.value, []byte(token)) == 1
}

// Classify labels token as a service or user credential.
func (s ServiceSecret) Classify(token string) Credential {
	if s.Matches(token) {
		return Credential{Kind: ServiceCredential, Token: token}
	}
	return Credential{Kind: UserCredential, Token: token}
}

// BearerToken extracts the token from an Authorization header value. The
// "Bearer" scheme is optional; a bare token is accepted as is.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	return header
}
