package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/geocode"
	"github.com/joshua-takyi/agenda/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// EventoGeoInput is the body of geocoded evento create and update requests.
// Lat and Lon are only read on updates that leave lugar untouched.
type EventoGeoInput struct {
	Nombre      string           `json:"nombre"`
	Timestamp   *models.FlexTime `json:"timestamp"`
	Lugar       string           `json:"lugar"`
	Organizador string           `json:"organizador"`
	Imagen      string           `json:"imagen"`
	Lat         *float64         `json:"lat"`
	Lon         *float64         `json:"lon"`
}

// Nearby is the answer of a proximity search.
type Nearby struct {
	Centro  models.Coordinates  `json:"centro"`
	Eventos []*models.EventoGeo `json:"eventos"`
}

type EventoGeoService struct {
	eventoRepo models.EventoGeoRepo
	geocoder   geocode.Geocoder
}

func NewEventoGeoService(eventoRepo models.EventoGeoRepo, geocoder geocode.Geocoder) *EventoGeoService {
	return &EventoGeoService{
		eventoRepo: eventoRepo,
		geocoder:   geocoder,
	}
}

func (es *EventoGeoService) ListEventos(ctx context.Context, values url.Values) ([]*models.EventoGeo, error) {
	q, err := models.EventoGeoQuerySpec.Build(values)
	if err != nil {
		return nil, err
	}
	return es.eventoRepo.ListEventosGeo(ctx, q)
}

func (es *EventoGeoService) GetEvento(ctx context.Context, id string) (*models.EventoGeo, error) {
	return es.eventoRepo.GetEventoGeoByID(ctx, id)
}

// Near lists the eventos inside the box of ProximityDelta degrees around
// the place lugar geocodes to.
func (es *EventoGeoService) Near(ctx context.Context, lugar string) (*Nearby, error) {
	lugar = strings.TrimSpace(lugar)
	if lugar == "" {
		return nil, apperrors.BadRequest("lugar is required")
	}
	centro, err := es.geocoder.Geocode(ctx, lugar)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", lugar, err)
	}
	eventos, err := es.eventoRepo.ListEventosGeoWithin(ctx, models.BoxAround(centro, geocode.ProximityDelta))
	if err != nil {
		return nil, err
	}
	return &Nearby{Centro: centro, Eventos: eventos}, nil
}

func (es *EventoGeoService) CreateEvento(ctx context.Context, in EventoGeoInput) (string, error) {
	nombre := strings.TrimSpace(in.Nombre)
	lugar := strings.TrimSpace(in.Lugar)
	organizador := strings.TrimSpace(in.Organizador)
	if nombre == "" || lugar == "" || organizador == "" || in.Timestamp == nil {
		return "", apperrors.BadRequest("nombre, timestamp, lugar and organizador are required")
	}

	coords, err := es.geocoder.Geocode(ctx, lugar)
	if err != nil {
		return "", fmt.Errorf("failed to geocode %q: %w", lugar, err)
	}

	evento := &models.EventoGeo{
		Nombre:      nombre,
		Timestamp:   in.Timestamp.Time,
		Lugar:       lugar,
		Lat:         coords.Latitude,
		Lon:         coords.Longitude,
		Organizador: organizador,
		Imagen:      strings.TrimSpace(in.Imagen),
	}
	id, err := es.eventoRepo.CreateEventoGeo(ctx, evento)
	if err != nil {
		return "", fmt.Errorf("failed to create evento: %w", err)
	}
	return id, nil
}

func (es *EventoGeoService) UpdateEvento(ctx context.Context, id string, in EventoGeoInput) (*models.UpdateResult, error) {
	set := bson.M{}
	if v := strings.TrimSpace(in.Nombre); v != "" {
		set["nombre"] = v
	}
	if in.Timestamp != nil {
		set["timestamp"] = in.Timestamp.Time
	}
	if v := strings.TrimSpace(in.Organizador); v != "" {
		set["organizador"] = v
	}
	if v := strings.TrimSpace(in.Imagen); v != "" {
		set["imagen"] = v
	}

	if lugar := strings.TrimSpace(in.Lugar); lugar != "" {
		coords, err := es.geocoder.Geocode(ctx, lugar)
		if err != nil {
			return nil, fmt.Errorf("failed to geocode %q: %w", lugar, err)
		}
		set["lugar"] = lugar
		set["lat"] = coords.Latitude
		set["lon"] = coords.Longitude
	} else if in.Lat != nil || in.Lon != nil {
		if in.Lat == nil || in.Lon == nil {
			return nil, apperrors.BadRequest("lat and lon must be sent together")
		}
		coords := models.Coordinates{Latitude: *in.Lat, Longitude: *in.Lon}
		if !coords.Valid() {
			return nil, apperrors.BadRequest("coordinates out of range")
		}
		set["lat"] = coords.Latitude
		set["lon"] = coords.Longitude
	}

	if len(set) == 0 {
		return nil, apperrors.BadRequest("nothing to update")
	}
	return matched(es.eventoRepo.UpdateEventoGeo(ctx, id, set))("evento")
}

func (es *EventoGeoService) DeleteEvento(ctx context.Context, id string) (int64, error) {
	return es.eventoRepo.DeleteEventoGeo(ctx, id)
}
