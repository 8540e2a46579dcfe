package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/geocode"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var teatinos = models.Coordinates{Latitude: 36.7150, Longitude: -4.4780}

func TestCreateEventoGeo_GeocodesLugar(t *testing.T) {
	repo := new(MockEventoGeoRepo)
	geo := new(MockGeocoder)
	geo.On("Geocode", mock.Anything, "Teatinos").Return(teatinos, nil)
	repo.On("CreateEventoGeo", mock.Anything, mock.MatchedBy(func(e *models.EventoGeo) bool {
		return e.Lugar == "Teatinos" && e.Lat == teatinos.Latitude && e.Lon == teatinos.Longitude
	})).Return("g1", nil)
	svc := NewEventoGeoService(repo, geo)

	id, err := svc.CreateEvento(context.Background(), EventoGeoInput{
		Nombre:      "Concierto",
		Timestamp:   &models.FlexTime{Time: time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC)},
		Lugar:       "Teatinos",
		Organizador: "ana@uma.es",
		Lat:         ptr(1.0),
		Lon:         ptr(1.0),
	})

	require.NoError(t, err)
	assert.Equal(t, "g1", id)
	repo.AssertExpectations(t)
}

func TestCreateEventoGeo_RequiredFields(t *testing.T) {
	repo := new(MockEventoGeoRepo)
	geo := new(MockGeocoder)
	svc := NewEventoGeoService(repo, geo)

	_, err := svc.CreateEvento(context.Background(), EventoGeoInput{Nombre: "Concierto", Lugar: "Teatinos", Organizador: "ana@uma.es"})

	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	geo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestUpdateEventoGeo_LugarChangeRegeocodes(t *testing.T) {
	repo := new(MockEventoGeoRepo)
	geo := new(MockGeocoder)
	geo.On("Geocode", mock.Anything, "Teatinos").Return(teatinos, nil)
	repo.On("UpdateEventoGeo", mock.Anything, "g1", bson.M{
		"lugar": "Teatinos",
		"lat":   teatinos.Latitude,
		"lon":   teatinos.Longitude,
	}).Return(&models.UpdateResult{Matched: 1, Modified: 1}, nil)
	svc := NewEventoGeoService(repo, geo)

	_, err := svc.UpdateEvento(context.Background(), "g1", EventoGeoInput{Lugar: "Teatinos", Lat: ptr(0.0), Lon: ptr(0.0)})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateEventoGeo_ExplicitCoordinates(t *testing.T) {
	repo := new(MockEventoGeoRepo)
	geo := new(MockGeocoder)
	repo.On("UpdateEventoGeo", mock.Anything, "g1", bson.M{"lat": 36.7, "lon": -4.4}).
		Return(&models.UpdateResult{Matched: 1}, nil)
	svc := NewEventoGeoService(repo, geo)

	_, err := svc.UpdateEvento(context.Background(), "g1", EventoGeoInput{Lat: ptr(36.7), Lon: ptr(-4.4)})
	require.NoError(t, err)

	_, err = svc.UpdateEvento(context.Background(), "g1", EventoGeoInput{Lat: ptr(36.7)})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.UpdateEvento(context.Background(), "g1", EventoGeoInput{Lat: ptr(136.7), Lon: ptr(0.0)})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	geo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestNear(t *testing.T) {
	repo := new(MockEventoGeoRepo)
	geo := new(MockGeocoder)
	geo.On("Geocode", mock.Anything, "Teatinos").Return(teatinos, nil)
	repo.On("ListEventosGeoWithin", mock.Anything, models.BoxAround(teatinos, geocode.ProximityDelta)).
		Return([]*models.EventoGeo{{Nombre: "Concierto"}}, nil)
	svc := NewEventoGeoService(repo, geo)

	got, err := svc.Near(context.Background(), "Teatinos")

	require.NoError(t, err)
	assert.Equal(t, teatinos, got.Centro)
	assert.Len(t, got.Eventos, 1)
}

func TestNear_Errors(t *testing.T) {
	repo := new(MockEventoGeoRepo)
	geo := new(MockGeocoder)
	geo.On("Geocode", mock.Anything, "Atlantis").Return(models.Coordinates{}, errors.New("geocoder unreachable"))
	svc := NewEventoGeoService(repo, geo)

	_, err := svc.Near(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = svc.Near(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.False(t, apperrors.IsClientError(err))
}
