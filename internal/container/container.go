package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/agenda/internal/auth"
	"github.com/joshua-takyi/agenda/internal/cache"
	"github.com/joshua-takyi/agenda/internal/config"
	"github.com/joshua-takyi/agenda/internal/geocode"
	"github.com/joshua-takyi/agenda/internal/media"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/joshua-takyi/agenda/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies. Only the services of the
// configured deployment are set.
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	MongoDBClient *mongo.Client
	Repo          *models.MongodbRepo

	ServiceSecret auth.ServiceSecret
	Verifier      auth.TokenVerifier
	Gate          *auth.Gate

	// usuarios
	UsuarioService *services.UsuarioService
	EventoService  *services.EventoService

	// clientes
	ClienteService   *services.ClienteService
	EventoGeoService *services.EventoGeoService
	MediaService     *services.MediaService
}

// NewContainer wires the deployment named by cfg.ServiceName. cld and
// geoCache are only used by the clientes service; either may be nil, and a
// nil geoCache disables geocode caching.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	mongoDBClient *mongo.Client,
	cld *cloudinary.Cloudinary,
	geoCache *cache.Redis,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	secret := auth.NewServiceSecret(cfg.ServiceSecret)

	c := &Container{
		Config:        cfg,
		Logger:        logger,
		MongoDBClient: mongoDBClient,
		Repo:          repo,
		ServiceSecret: secret,
	}

	switch cfg.ServiceName {
	case config.ServiceUsuarios:
		c.UsuarioService = services.NewUsuarioService(repo)
		c.EventoService = services.NewEventoService(repo)
		c.Verifier = auth.NewRemoteVerifier(cfg.VerifyHost, cfg.HTTPClientTimeout, logger)
		c.Gate = auth.NewGate(secret, c.Verifier, logger, auth.WithResolver(c.UsuarioService.ResolveIdentity))
	default:
		var geocoder geocode.Geocoder = geocode.NewClient(cfg.GeocoderURL, cfg.HTTPClientTimeout, logger)
		if geoCache != nil {
			geocoder = geocode.NewCached(geocoder, geoCache, cfg.GeocodeCacheTTL, logger)
		}
		host := media.NewCloudinary(cld, cfg.UploadPreset)
		c.ClienteService = services.NewClienteService(repo)
		c.EventoGeoService = services.NewEventoGeoService(repo, geocoder)
		c.MediaService = services.NewMediaService(host, cfg.HTTPClientTimeout, logger)
		c.Verifier = auth.NewStoreVerifier(repo)
		c.Gate = auth.NewGate(secret, c.Verifier, logger)
	}

	return c
}

// Collections lists the collections the configured deployment owns.
func (c *Container) Collections() []string {
	if c.Config.ServiceName == config.ServiceUsuarios {
		return []string{models.UsuariosColName, models.EventosColName}
	}
	return []string{models.ClientesColName, models.EventosGeoColName}
}
