package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// EventoInput is the body of evento create and update requests.
type EventoInput struct {
	Anfitrion   string            `json:"anfitrion"`
	Descripcion string            `json:"descripcion"`
	Inicio      *models.FlexTime  `json:"inicio"`
	Duracion    *float64          `json:"duracion"`
	Invitados   []models.Invitado `json:"invitados"`
}

type EventoService struct {
	eventoRepo models.EventoRepo
}

func NewEventoService(eventoRepo models.EventoRepo) *EventoService {
	return &EventoService{
		eventoRepo: eventoRepo,
	}
}

func (es *EventoService) ListEventos(ctx context.Context, values url.Values) ([]*models.Evento, error) {
	q, err := models.EventoQuerySpec.Build(values)
	if err != nil {
		return nil, err
	}
	return es.eventoRepo.ListEventos(ctx, q)
}

func (es *EventoService) GetEvento(ctx context.Context, id string) (*models.Evento, error) {
	return es.eventoRepo.GetEventoByID(ctx, id)
}

func (es *EventoService) CreateEvento(ctx context.Context, in EventoInput) (string, error) {
	anfitrion := strings.TrimSpace(in.Anfitrion)
	descripcion := strings.TrimSpace(in.Descripcion)
	if anfitrion == "" || descripcion == "" || in.Inicio == nil || in.Duracion == nil || in.Invitados == nil {
		return "", apperrors.BadRequest("anfitrion, descripcion, inicio, duracion and invitados are required")
	}
	if err := validateDuracion(*in.Duracion); err != nil {
		return "", err
	}
	invitados, err := normalizeInvitados(in.Invitados)
	if err != nil {
		return "", err
	}

	evento := &models.Evento{
		Anfitrion:   anfitrion,
		Descripcion: descripcion,
		Inicio:      in.Inicio.Time,
		Duracion:    *in.Duracion,
		Invitados:   invitados,
	}
	id, err := es.eventoRepo.CreateEvento(ctx, evento)
	if err != nil {
		return "", fmt.Errorf("failed to create evento: %w", err)
	}
	return id, nil
}

func (es *EventoService) UpdateEvento(ctx context.Context, id string, in EventoInput) (*models.UpdateResult, error) {
	set := bson.M{}
	if v := strings.TrimSpace(in.Anfitrion); v != "" {
		set["anfitrion"] = v
	}
	if v := strings.TrimSpace(in.Descripcion); v != "" {
		set["descripcion"] = v
	}
	if in.Inicio != nil {
		set["inicio"] = in.Inicio.Time
	}
	if in.Duracion != nil {
		if err := validateDuracion(*in.Duracion); err != nil {
			return nil, err
		}
		set["duracion"] = *in.Duracion
	}
	if in.Invitados != nil {
		invitados, err := normalizeInvitados(in.Invitados)
		if err != nil {
			return nil, err
		}
		set["invitados"] = invitados
	}
	if len(set) == 0 {
		return nil, apperrors.BadRequest("nothing to update")
	}

	return matched(es.eventoRepo.UpdateEvento(ctx, id, set))("evento")
}

func (es *EventoService) DeleteEvento(ctx context.Context, id string) (int64, error) {
	return es.eventoRepo.DeleteEvento(ctx, id)
}

// Invite appends email to the evento's invitees as pendiente. Repeated
// invitations are not collapsed.
func (es *EventoService) Invite(ctx context.Context, id, email string) (*models.UpdateResult, error) {
	email = strings.TrimSpace(email)
	if strings.TrimSpace(id) == "" || email == "" {
		return nil, apperrors.BadRequest("id and email are required")
	}
	if err := validateEmails(email); err != nil {
		return nil, err
	}
	inv := models.Invitado{Email: email, Estado: models.EstadoPendiente}
	return matched(es.eventoRepo.AddInvitado(ctx, id, inv))("evento")
}

// Reschedule stores a copy of the evento shifted by dias days and returns
// the new id. The source evento is left untouched.
func (es *EventoService) Reschedule(ctx context.Context, id string, dias any) (string, error) {
	n, err := ParseDias(dias)
	if err != nil {
		return "", err
	}
	source, err := es.eventoRepo.GetEventoByID(ctx, id)
	if err != nil {
		return "", err
	}
	newID, err := es.eventoRepo.CreateEvento(ctx, source.Rescheduled(n))
	if err != nil {
		return "", fmt.Errorf("failed to reschedule evento: %w", err)
	}
	return newID, nil
}

// Agenda lists the eventos email hosts or is invited to.
func (es *EventoService) Agenda(ctx context.Context, email string) ([]*models.Evento, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	return es.eventoRepo.Agenda(ctx, email)
}

// ParseDias reads a day offset sent as a JSON number or a numeric string.
// Fractions are truncated; zero, missing and out-of-range values are rejected.
func ParseDias(v any) (int, error) {
	var d float64
	switch x := v.(type) {
	case float64:
		d = x
	case int:
		d = float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, apperrors.BadRequest("dias must be a number")
		}
		d = f
	case nil:
		return 0, apperrors.BadRequest("dias is required")
	default:
		return 0, apperrors.BadRequest("dias must be a number")
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, apperrors.BadRequest("dias must be a number")
	}
	d = math.Trunc(d)
	if math.Abs(d) > models.MaxRescheduleDays {
		return 0, apperrors.BadRequest("dias must be between -%d and %d", models.MaxRescheduleDays, models.MaxRescheduleDays)
	}
	if d == 0 {
		return 0, apperrors.BadRequest("dias must be a non-zero number of days")
	}
	return int(d), nil
}

func validateDuracion(d float64) error {
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return apperrors.BadRequest("duracion must be a positive number")
	}
	return nil
}

func normalizeInvitados(in []models.Invitado) ([]models.Invitado, error) {
	out := make([]models.Invitado, 0, len(in))
	for _, inv := range in {
		inv.Email = strings.TrimSpace(inv.Email)
		if inv.Estado == "" {
			inv.Estado = models.EstadoPendiente
		}
		if err := models.Validate.Struct(inv); err != nil {
			return nil, apperrors.BadRequest("invalid invitado %q: %v", inv.Email, err)
		}
		out = append(out, inv)
	}
	return out, nil
}
