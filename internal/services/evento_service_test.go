package services

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func validEventoInput() EventoInput {
	return EventoInput{
		Anfitrion:   "ana@uma.es",
		Descripcion: "Reunión de grupo",
		Inicio:      &models.FlexTime{Time: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
		Duracion:    ptr(1.5),
		Invitados:   []models.Invitado{{Email: "b@uma.es"}},
	}
}

func TestCreateEvento(t *testing.T) {
	repo := new(MockEventoRepo)
	repo.On("CreateEvento", mock.Anything, mock.MatchedBy(func(e *models.Evento) bool {
		return e.Anfitrion == "ana@uma.es" &&
			e.Duracion == 1.5 &&
			len(e.Invitados) == 1 &&
			e.Invitados[0].Estado == models.EstadoPendiente
	})).Return("e1", nil)
	svc := NewEventoService(repo)

	id, err := svc.CreateEvento(context.Background(), validEventoInput())

	require.NoError(t, err)
	assert.Equal(t, "e1", id)
	repo.AssertExpectations(t)
}

func TestCreateEvento_RequiredFields(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*EventoInput)
	}{
		{"no anfitrion", func(in *EventoInput) { in.Anfitrion = "" }},
		{"no descripcion", func(in *EventoInput) { in.Descripcion = "" }},
		{"no inicio", func(in *EventoInput) { in.Inicio = nil }},
		{"no duracion", func(in *EventoInput) { in.Duracion = nil }},
		{"zero duracion", func(in *EventoInput) { in.Duracion = ptr(0.0) }},
		{"no invitados", func(in *EventoInput) { in.Invitados = nil }},
		{"bad invitado estado", func(in *EventoInput) { in.Invitados = []models.Invitado{{Email: "b@uma.es", Estado: "quizás"}} }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockEventoRepo)
			svc := NewEventoService(repo)
			in := validEventoInput()
			tc.mutate(&in)

			_, err := svc.CreateEvento(context.Background(), in)

			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
			repo.AssertNotCalled(t, "CreateEvento", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateEvento_EmptyInvitadosAllowed(t *testing.T) {
	repo := new(MockEventoRepo)
	repo.On("CreateEvento", mock.Anything, mock.Anything).Return("e1", nil)
	svc := NewEventoService(repo)
	in := validEventoInput()
	in.Invitados = []models.Invitado{}

	_, err := svc.CreateEvento(context.Background(), in)

	assert.NoError(t, err)
}

func TestInvite(t *testing.T) {
	repo := new(MockEventoRepo)
	repo.On("AddInvitado", mock.Anything, "e1", models.Invitado{Email: "c@uma.es", Estado: models.EstadoPendiente}).
		Return(&models.UpdateResult{Matched: 1, Modified: 1}, nil)
	repo.On("AddInvitado", mock.Anything, "missing", mock.Anything).Return(&models.UpdateResult{}, nil)
	svc := NewEventoService(repo)

	_, err := svc.Invite(context.Background(), "e1", "c@uma.es")
	require.NoError(t, err)

	_, err = svc.Invite(context.Background(), "missing", "c@uma.es")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Invite(context.Background(), "e1", "")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestInvite_SameEmailTwiceAddsTwoEntries(t *testing.T) {
	repo := new(MockEventoRepo)
	inv := models.Invitado{Email: "c@uma.es", Estado: models.EstadoPendiente}
	repo.On("AddInvitado", mock.Anything, "e1", inv).
		Return(&models.UpdateResult{Matched: 1, Modified: 1}, nil).Twice()
	svc := NewEventoService(repo)

	for i := 0; i < 2; i++ {
		res, err := svc.Invite(context.Background(), "e1", " c@uma.es ")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Modified)
	}

	repo.AssertNumberOfCalls(t, "AddInvitado", 2)
	repo.AssertExpectations(t)
}

func TestReschedule(t *testing.T) {
	inicio := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	source := &models.Evento{
		Anfitrion:   "ana@uma.es",
		Descripcion: "Reunión",
		Inicio:      inicio,
		Duracion:    2,
		Invitados:   []models.Invitado{{Email: "b@uma.es", Estado: models.EstadoAceptado}},
	}

	repo := new(MockEventoRepo)
	repo.On("GetEventoByID", mock.Anything, "e1").Return(source, nil)
	repo.On("CreateEvento", mock.Anything, mock.MatchedBy(func(e *models.Evento) bool {
		return e.Inicio.Equal(inicio.AddDate(0, 0, 7)) && e.Descripcion == "Reunión" && len(e.Invitados) == 1
	})).Return("e2", nil)
	svc := NewEventoService(repo)

	id, err := svc.Reschedule(context.Background(), "e1", float64(7))

	require.NoError(t, err)
	assert.Equal(t, "e2", id)
	assert.Equal(t, inicio, source.Inicio)
}

func TestReschedule_MissingSource(t *testing.T) {
	repo := new(MockEventoRepo)
	repo.On("GetEventoByID", mock.Anything, "gone").Return(nil, apperrors.NotFound("evento"))
	svc := NewEventoService(repo)

	_, err := svc.Reschedule(context.Background(), "gone", "3")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "CreateEvento", mock.Anything, mock.Anything)
}

func TestParseDias(t *testing.T) {
	testCases := []struct {
		in      any
		want    int
		wantErr bool
	}{
		{float64(3), 3, false},
		{float64(-2), -2, false},
		{2.9, 2, false},
		{"5", 5, false},
		{" 4 ", 4, false},
		{0, 0, true},
		{float64(0), 0, true},
		{"", 0, true},
		{"tres", 0, true},
		{nil, 0, true},
		{true, 0, true},
		{float64(100000), 100000, false},
		{-100000, -100000, false},
		{float64(100001), 0, true},
		{float64(200000), 0, true},
		{1e20, 0, true},
		{"-1e20", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tc := range testCases {
		got, err := ParseDias(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, apperrors.ErrBadRequest, "%v", tc.in)
			continue
		}
		require.NoError(t, err, "%v", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestAgenda(t *testing.T) {
	repo := new(MockEventoRepo)
	repo.On("Agenda", mock.Anything, "ana@uma.es").Return([]*models.Evento{{Anfitrion: "ana@uma.es"}}, nil)
	svc := NewEventoService(repo)

	got, err := svc.Agenda(context.Background(), "ana@uma.es")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.Agenda(context.Background(), " ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
