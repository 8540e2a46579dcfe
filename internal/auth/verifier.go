package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/models"
)

var (
	ErrTokenNotFound = &apperrors.APIError{
		Code:       "token_not_found",
		Message:    "Token not found",
		StatusCode: http.StatusUnauthorized,
	}
	ErrTokenExpired = &apperrors.APIError{
		Code:       "token_expired",
		Message:    "Token expired",
		StatusCode: http.StatusUnauthorized,
	}
)

// TokenVerifier turns a user token into an identity or fails.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// TokenLookup is the part of the login-record store the verifier needs.
type TokenLookup interface {
	GetClienteByToken(ctx context.Context, token string) (*models.ClienteLoginRecord, error)
}

// StoreVerifier is the authoritative check: the token must belong to a
// stored login record whose exp is still in the future.
type StoreVerifier struct {
	records TokenLookup
	now     func() time.Time
}

func NewStoreVerifier(records TokenLookup) *StoreVerifier {
	return &StoreVerifier{records: records, now: time.Now}
}

func (v *StoreVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}
	rec, err := v.records.GetClienteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error looking up token: %w", err)
	}
	if rec.Expired(v.now()) {
		return nil, ErrTokenExpired
	}
	return &Identity{
		ID:       rec.ID.Hex(),
		Email:    rec.Email,
		GoogleID: rec.GoogleID,
	}, nil
}
