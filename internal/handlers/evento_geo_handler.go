package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/middleware"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/joshua-takyi/agenda/internal/services"
)

func ListEventosGeoHandler(es *services.EventoGeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventos, err := es.ListEventos(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(eventos, len(eventos)))
	}
}

// CercaHandler lists the eventos near ?lugar=.
func CercaHandler(es *services.EventoGeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		nearby, err := es.Near(c.Request.Context(), query(c, "lugar"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nearby, ""))
	}
}

func GetEventoGeoHandler(es *services.EventoGeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		evento, err := es.GetEvento(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(evento, ""))
	}
}

func CreateEventoGeoHandler(es *services.EventoGeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.EventoGeoInput
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

func UpdateEventoGeoHandler(es *services.EventoGeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.EventoGeoInput
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

func DeleteEventoGeoHandler(es *services.EventoGeoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := es.DeleteEvento(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		respondDeleted(c, n)
	}
}
