package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/helpers"
	"github.com/joshua-takyi/agenda/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// ClienteInput is the body of login record create and update requests.
type ClienteInput struct {
	Email     string           `json:"email"`
	GoogleID  string           `json:"googleId"`
	Token     string           `json:"token"`
	Timestamp *models.FlexTime `json:"timestamp"`
	Exp       *models.FlexTime `json:"exp"`
}

type ClienteService struct {
	clienteRepo models.ClienteRepo
}

func NewClienteService(clienteRepo models.ClienteRepo) *ClienteService {
	return &ClienteService{
		clienteRepo: clienteRepo,
	}
}

func (cs *ClienteService) ListClientes(ctx context.Context, values url.Values) ([]*models.ClienteLoginRecord, error) {
	q, err := models.ClienteQuerySpec.Build(values)
	if err != nil {
		return nil, err
	}
	return cs.clienteRepo.ListClientes(ctx, q)
}

func (cs *ClienteService) GetCliente(ctx context.Context, id string) (*models.ClienteLoginRecord, error) {
	return cs.clienteRepo.GetClienteByID(ctx, id)
}

// CreateCliente stores a login record. When timestamp or exp are missing
// and the token is a JWT, they are taken from its iat and exp claims.
func (cs *ClienteService) CreateCliente(ctx context.Context, in ClienteInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	googleID := strings.TrimSpace(in.GoogleID)
	token := strings.TrimSpace(in.Token)
	if email == "" || googleID == "" || token == "" {
		return "", apperrors.BadRequest("email, googleId and token are required")
	}
	if err := validateEmails(email); err != nil {
		return "", err
	}

	var timestamp, exp time.Time
	if in.Timestamp != nil {
		timestamp = in.Timestamp.Time
	}
	if in.Exp != nil {
		exp = in.Exp.Time
	}
	if timestamp.IsZero() || exp.IsZero() {
		if claims, err := helpers.ParseTokenClaims(token); err == nil {
			if timestamp.IsZero() {
				timestamp = claims.Issued()
			}
			if exp.IsZero() {
				exp = claims.Expires()
			}
		}
	}
	if timestamp.IsZero() || exp.IsZero() {
		return "", apperrors.BadRequest("timestamp and exp are required")
	}

	record := &models.ClienteLoginRecord{
		Email:     email,
		GoogleID:  googleID,
		Token:     token,
		Timestamp: timestamp,
		Exp:       exp,
	}
	id, err := cs.clienteRepo.CreateCliente(ctx, record)
	if err != nil {
		return "", fmt.Errorf("failed to create login record: %w", err)
	}
	return id, nil
}

// UpdateCliente refreshes the session of the record with googleID.
func (cs *ClienteService) UpdateCliente(ctx context.Context, googleID string, in ClienteInput) (*models.UpdateResult, error) {
	if strings.TrimSpace(googleID) == "" {
		return nil, apperrors.BadRequest("googleId is required")
	}
	set := bson.M{}
	if in.Timestamp != nil {
		set["timestamp"] = in.Timestamp.Time
	}
	if in.Exp != nil {
		set["exp"] = in.Exp.Time
	}
	if token := strings.TrimSpace(in.Token); token != "" {
		set["token"] = token
	}
	if len(set) == 0 {
		return nil, apperrors.BadRequest("nothing to update: send timestamp, exp or token")
	}
	return matched(cs.clienteRepo.UpdateClienteByGoogleID(ctx, googleID, set))("login record")
}
