package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/config"
	"github.com/joshua-takyi/agenda/internal/container"
	"github.com/joshua-takyi/agenda/internal/handlers"
	"github.com/joshua-takyi/agenda/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestTimeout bounds every request, matching the server write timeout.
const RequestTimeout = 15 * time.Second

// SetupRoutes builds the router of the deployment the container was wired for.
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.Timeout(RequestTimeout))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/health", handlers.HealthHandler(container.Config.ServiceName))

	protected := v1.Group("/")
	protected.Use(middleware.Authorize(container.Gate))

	if container.Config.ServiceName == config.ServiceUsuarios {
		setupUsuariosRoutes(protected, container)
	} else {
		setupClientesRoutes(v1, protected, container)
	}

	return r
}

func setupUsuariosRoutes(protected *gin.RouterGroup, container *container.Container) {
	usuarioRoutes := protected.Group("/usuarios")
	{
		usuarioRoutes.GET("", handlers.ListUsuariosHandler(container.UsuarioService))
		usuarioRoutes.POST("", handlers.CreateUsuarioHandler(container.UsuarioService))
		usuarioRoutes.GET("/:id", handlers.GetUsuarioHandler(container.UsuarioService))
		usuarioRoutes.PUT("/:id", handlers.UpdateUsuarioHandler(container.UsuarioService))
		usuarioRoutes.DELETE("/:id", handlers.DeleteUsuarioHandler(container.UsuarioService))
		usuarioRoutes.GET("/:id/contactos", handlers.ListContactosHandler(container.UsuarioService))
		usuarioRoutes.POST("/:id/contactos", handlers.AddContactoHandler(container.UsuarioService))
		usuarioRoutes.DELETE("/:id/contactos", handlers.RemoveContactoHandler(container.UsuarioService))
		usuarioRoutes.GET("/:id/contactos/:nombre", handlers.SearchContactosHandler(container.UsuarioService))
	}

	eventoRoutes := protected.Group("/eventos")
	{
		eventoRoutes.GET("", handlers.ListEventosHandler(container.EventoService))
		eventoRoutes.POST("", handlers.CreateEventoHandler(container.EventoService))
		eventoRoutes.GET("/:id", handlers.GetEventoHandler(container.EventoService))
		eventoRoutes.PUT("/:id", handlers.UpdateEventoHandler(container.EventoService))
		eventoRoutes.DELETE("/:id", handlers.DeleteEventoHandler(container.EventoService))
		eventoRoutes.POST("/:id/invitar", handlers.InvitarHandler(container.EventoService))
		eventoRoutes.POST("/:id/reprogramar", handlers.ReprogramarHandler(container.EventoService))
		eventoRoutes.GET("/:id/agenda", handlers.AgendaHandler(container.EventoService))
	}
}

func setupClientesRoutes(v1, protected *gin.RouterGroup, container *container.Container) {
	// public: the sibling service calls it to verify its own callers
	v1.GET("/verifyToken/:token", handlers.VerifyTokenHandler(container.ServiceSecret, container.Verifier))

	clienteRoutes := protected.Group("/clientes")
	{
		clienteRoutes.GET("", handlers.ListClientesHandler(container.ClienteService))
		clienteRoutes.POST("", handlers.CreateClienteHandler(container.ClienteService))
		clienteRoutes.GET("/:id", handlers.GetClienteHandler(container.ClienteService))
		clienteRoutes.PUT("/:googleId", handlers.UpdateClienteHandler(container.ClienteService))
	}

	eventoRoutes := protected.Group("/eventos")
	{
		eventoRoutes.GET("", handlers.ListEventosGeoHandler(container.EventoGeoService))
		eventoRoutes.POST("", handlers.CreateEventoGeoHandler(container.EventoGeoService))
		eventoRoutes.GET("/cerca", handlers.CercaHandler(container.EventoGeoService))
		eventoRoutes.GET("/:id", handlers.GetEventoGeoHandler(container.EventoGeoService))
		eventoRoutes.PUT("/:id", handlers.UpdateEventoGeoHandler(container.EventoGeoService))
		eventoRoutes.DELETE("/:id", handlers.DeleteEventoGeoHandler(container.EventoGeoService))
	}

	mediaRoutes := protected.Group("/cloudinary")
	{
		mediaRoutes.GET("/greatest", handlers.GreatestHandler(container.MediaService))
		mediaRoutes.GET("/images", handlers.FindImageHandler(container.MediaService))
		mediaRoutes.POST("/images", handlers.UploadImageHandler(container.MediaService))
		mediaRoutes.DELETE("/images", handlers.DeleteImageHandler(container.MediaService))
		mediaRoutes.DELETE("/folder", handlers.DeleteFolderHandler(container.MediaService))
	}
}
