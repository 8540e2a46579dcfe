package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/joshua-takyi/agenda/internal/media"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func updateResult(args mock.Arguments) (*models.UpdateResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UpdateResult), args.Error(1)
}

type MockUsuarioRepo struct {
	mock.Mock
}

func (m *MockUsuarioRepo) ListUsuarios(ctx context.Context, q models.Query) ([]*models.Usuario, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.Usuario), args.Error(1)
}

func (m *MockUsuarioRepo) GetUsuarioByID(ctx context.Context, id string) (*models.Usuario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

func (m *MockUsuarioRepo) GetUsuarioByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

func (m *MockUsuarioRepo) CreateUsuario(ctx context.Context, u *models.Usuario) (string, error) {
	args := m.Called(ctx, u)
	return args.String(0), args.Error(1)
}

func (m *MockUsuarioRepo) UpdateUsuario(ctx context.Context, id string, set bson.M) (*models.UpdateResult, error) {
	return updateResult(m.Called(ctx, id, set))
}

func (m *MockUsuarioRepo) DeleteUsuario(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsuarioRepo) AddContacto(ctx context.Context, id, email string) (*models.UpdateResult, error) {
	return updateResult(m.Called(ctx, id, email))
}

func (m *MockUsuarioRepo) RemoveContacto(ctx context.Context, id, email string) (*models.UpdateResult, error) {
	return updateResult(m.Called(ctx, id, email))
}

func (m *MockUsuarioRepo) SearchContactos(ctx context.Context, emails []string, nombre string) ([]*models.Usuario, error) {
	args := m.Called(ctx, emails, nombre)
	return args.Get(0).([]*models.Usuario), args.Error(1)
}

type MockEventoRepo struct {
	mock.Mock
}

func (m *MockEventoRepo) ListEventos(ctx context.Context, q models.Query) ([]*models.Evento, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.Evento), args.Error(1)
}

func (m *MockEventoRepo) GetEventoByID(ctx context.Context, id string) (*models.Evento, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Evento), args.Error(1)
}

func (m *MockEventoRepo) CreateEvento(ctx context.Context, e *models.Evento) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}

func (m *MockEventoRepo) UpdateEvento(ctx context.Context, id string, set bson.M) (*models.UpdateResult, error) {
	return updateResult(m.Called(ctx, id, set))
}

func (m *MockEventoRepo) DeleteEvento(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventoRepo) AddInvitado(ctx context.Context, id string, inv models.Invitado) (*models.UpdateResult, error) {
	return updateResult(m.Called(ctx, id, inv))
}

func (m *MockEventoRepo) Agenda(ctx context.Context, email string) ([]*models.Evento, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]*models.Evento), args.Error(1)
}

type MockEventoGeoRepo struct {
	mock.Mock
}

func (m *MockEventoGeoRepo) ListEventosGeo(ctx context.Context, q models.Query) ([]*models.EventoGeo, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.EventoGeo), args.Error(1)
}

func (m *MockEventoGeoRepo) ListEventosGeoWithin(ctx context.Context, box models.BoundingBox) ([]*models.EventoGeo, error) {
	args := m.Called(ctx, box)
	return args.Get(0).([]*models.EventoGeo), args.Error(1)
}

func (m *MockEventoGeoRepo) GetEventoGeoByID(ctx context.Context, id string) (*models.EventoGeo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventoGeo), args.Error(1)
}

func (m *MockEventoGeoRepo) CreateEventoGeo(ctx context.Context, e *models.EventoGeo) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}

func (m *MockEventoGeoRepo) UpdateEventoGeo(ctx context.Context, id string, set bson.M) (*models.UpdateResult, error) {
	return updateResult(m.Called(ctx, id, set))
}

func (m *MockEventoGeoRepo) DeleteEventoGeo(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockClienteRepo struct {
	mock.Mock
}

func (m *MockClienteRepo) ListClientes(ctx context.Context, q models.Query) ([]*models.ClienteLoginRecord, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*models.ClienteLoginRecord), args.Error(1)
}

func (m *MockClienteRepo) GetClienteByID(ctx context.Context, id string) (*models.ClienteLoginRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClienteLoginRecord), args.Error(1)
}

func (m *MockClienteRepo) GetClienteByToken(ctx context.Context, token string) (*models.ClienteLoginRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClienteLoginRecord), args.Error(1)
}

func (m *MockClienteRepo) CreateCliente(ctx context.Context, c *models.ClienteLoginRecord) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

func (m *MockClienteRepo) UpdateClienteByGoogleID(ctx context.Context, googleID string, set bson.M) (*models.UpdateResult, error) {
	return updateResult(m.Called(ctx, googleID, set))
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(models.Coordinates), args.Error(1)
}

type MockMediaHost struct {
	mock.Mock
}

func (m *MockMediaHost) UploadImage(ctx context.Context, folder, name string, image []byte) (*media.Asset, error) {
	args := m.Called(ctx, folder, name, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Asset), args.Error(1)
}

func (m *MockMediaHost) DestroyImage(ctx context.Context, publicID string) (string, error) {
	args := m.Called(ctx, publicID)
	return args.String(0), args.Error(1)
}

func (m *MockMediaHost) DeleteByPrefix(ctx context.Context, prefix string) (*media.PrefixDeletion, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.PrefixDeletion), args.Error(1)
}

func (m *MockMediaHost) DeleteFolder(ctx context.Context, folder string) error {
	args := m.Called(ctx, folder)
	return args.Error(0)
}

func (m *MockMediaHost) Search(ctx context.Context, expression string) (*media.SearchResult, error) {
	args := m.Called(ctx, expression)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.SearchResult), args.Error(1)
}
