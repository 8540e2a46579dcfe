package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/middleware"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/joshua-takyi/agenda/internal/services"
)

type invitarRequest struct {
	Email string `json:"email"`
}

type reprogramarRequest struct {
	Dias any `json:"dias"`
}

func ListEventosHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventos, err := es.ListEventos(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(eventos, len(eventos)))
	}
}

func GetEventoHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		evento, err := es.GetEvento(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(evento, ""))
	}
}

func CreateEventoHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.EventoInput
		if !bindJSON(c, &in) {
			return
		}
		id, err := es.CreateEvento(c.Request.Context(), in)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		respondCreated(c, id, "evento created")
	}
}

func UpdateEventoHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.EventoInput
		if !bindJSON(c, &in) {
			return
		}
		res, err := es.UpdateEvento(c.Request.Context(), param(c, "id"), in)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "evento updated"))
	}
}

func DeleteEventoHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := es.DeleteEvento(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		respondDeleted(c, n)
	}
}

func InvitarHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req invitarRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := es.Invite(c.Request.Context(), param(c, "id"), req.Email)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "invitado added"))
	}
}

func ReprogramarHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reprogramarRequest
		if !bindJSON(c, &req) {
			return
		}
		id, err := es.Reschedule(c.Request.Context(), param(c, "id"), req.Dias)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		respondCreated(c, id, "evento rescheduled")
	}
}

// AgendaHandler serves /eventos/:id/agenda, where :id is an email.
func AgendaHandler(es *services.EventoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventos, err := es.Agenda(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(eventos, len(eventos)))
	}
}
