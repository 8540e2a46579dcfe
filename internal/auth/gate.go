package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/metrics"
)

// IdentityResolver enriches a verified identity, e.g. with the user
// document its email points to.
type IdentityResolver func(ctx context.Context, identity *Identity) error

type Gate struct {
	secret   ServiceSecret
	verifier TokenVerifier
	resolve  IdentityResolver
	logger   *slog.Logger
}

type GateOption func(*Gate)

func WithResolver(r IdentityResolver) GateOption {
	return func(g *Gate) {
		g.resolve = r
	}
}

func NewGate(secret ServiceSecret, verifier TokenVerifier, logger *slog.Logger, opts ...GateOption) *Gate {
	g := &Gate{
		secret:   secret,
		verifier: verifier,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Admit decides whether a request with the given bearer token may run
// method against resourceID (empty when the path names no resource).
func (g *Gate) Admit(ctx context.Context, token, method, resourceID string) (*Identity, error) {
	identity, err := g.admit(ctx, token, method, resourceID)
	metrics.AuthDecisionsTotal.WithLabelValues(decision(identity, err)).Inc()
	return identity, err
}

func (g *Gate) admit(ctx context.Context, token, method, resourceID string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidCredential.WithMessage("Authorization header required")
	}

	cred := g.secret.Classify(token)
	if cred.Kind == ServiceCredential {
		return ServiceIdentity(), nil
	}

	if method == http.MethodDelete && resourceID == "" {
		return nil, apperrors.ErrResourceIDRequired
	}

	identity, err := g.verifier.Verify(ctx, cred.Token)
	if err != nil {
		if apperrors.IsClientError(err) {
			return nil, apperrors.ErrInvalidCredential.WithMessage(apperrors.As(err).Message)
		}
		g.logger.Error("token verification failed", "error", err)
		return nil, apperrors.ErrInvalidCredential
	}

	if g.resolve != nil {
		if err := g.resolve(ctx, identity); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("error resolving identity: %w", err)
		}
	}

	if err := Authorize(method, resourceID, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Authorize applies the ownership rule for mutating methods: PUT and DELETE
// may only target a resource the identity owns, and DELETE must name one.
func Authorize(method, resourceID string, identity *Identity) error {
	if identity != nil && identity.Service {
		return nil
	}
	switch method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return nil
	}
	if resourceID == "" {
		if method == http.MethodDelete {
			return apperrors.ErrResourceIDRequired
		}
		return nil
	}
	if !identity.Owns(resourceID) {
		return apperrors.ErrUnauthorizedAction
	}
	return nil
}

func decision(identity *Identity, err error) string {
	if err != nil {
		return apperrors.As(err).Code
	}
	if identity.Service {
		return "service"
	}
	return "admitted"
}
