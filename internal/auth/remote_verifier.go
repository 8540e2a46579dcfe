package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/breaker"
	"github.com/joshua-takyi/agenda/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

const verifierDependency = "token-verifier"

// VerifyResponse is the body of a successful GET /verifyToken/:token.
type VerifyResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	GoogleID string `json:"googleId,omitempty"`
	Service  bool   `json:"service,omitempty"`
}

// VerifyError is the body of a rejected verification.
type VerifyError struct {
	Err string `json:"err"`
}

// RemoteVerifier asks the clientes service to verify a token.
type RemoteVerifier struct {
	endpoint   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[*Identity]
}

func NewRemoteVerifier(host string, timeout time.Duration, logger *slog.Logger) *RemoteVerifier {
	return &RemoteVerifier{
		endpoint:   host + "/api/v1/verifyToken/",
		httpClient: &http.Client{Timeout: timeout},
		cb:         breaker.New[*Identity](verifierDependency, logger),
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}

	start := time.Now()
	identity, err := v.cb.Execute(func() (*Identity, error) {
		return v.call(ctx, token)
	})
	metrics.ExternalRequestDuration.WithLabelValues(verifierDependency).Observe(time.Since(start).Seconds())

	result := "ok"
	if err != nil {
		result = "rejected"
		if !apperrors.IsClientError(err) {
			result = "error"
		}
	}
	metrics.ExternalRequestsTotal.WithLabelValues(verifierDependency, result).Inc()
	return identity, err
}

func (v *RemoteVerifier) call(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint+url.PathEscape(token), nil)
	if err != nil {
		return nil, fmt.Errorf("error building verify request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// a remote "service" answer is never trusted as a service identity
		var body VerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("error decoding verify response: %w", err)
		}
		if body.Message != "success" {
			return nil, apperrors.ErrInvalidCredential
		}
		return &Identity{
			ID:       body.ID,
			Email:    body.Email,
			GoogleID: body.GoogleID,
		}, nil
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		var body VerifyError
		_ = json.NewDecoder(resp.Body).Decode(&body)
		switch body.Err {
		case ErrTokenExpired.Message:
			return nil, ErrTokenExpired
		case ErrTokenNotFound.Message:
			return nil, ErrTokenNotFound
		}
		return nil, apperrors.ErrInvalidCredential
	default:
		return nil, fmt.Errorf("verifier answered %d", resp.StatusCode)
	}
}
