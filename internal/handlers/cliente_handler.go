package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/auth"
	"github.com/joshua-takyi/agenda/internal/middleware"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/joshua-takyi/agenda/internal/services"
)

func ListClientesHandler(cs *services.ClienteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientes, err := cs.ListClientes(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(clientes, len(clientes)))
	}
}

func GetClienteHandler(cs *services.ClienteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cliente, err := cs.GetCliente(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(cliente, ""))
	}
}

func CreateClienteHandler(cs *services.ClienteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ClienteInput
		if !bindJSON(c, &in) {
			return
		}
		id, err := cs.CreateCliente(c.Request.Context(), in)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		respondCreated(c, id, "login record created")
	}
}

func UpdateClienteHandler(cs *services.ClienteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ClienteInput
		if !bindJSON(c, &in) {
			return
		}
		res, err := cs.UpdateCliente(c.Request.Context(), param(c, "googleId"), in)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "login record updated"))
	}
}

// VerifyTokenHandler answers sibling services asking whether a token is a
// live login. The service secret is recognized as such.
func VerifyTokenHandler(secret auth.ServiceSecret, verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := param(c, "token")
		if secret.Matches(token) {
			c.JSON(http.StatusOK, auth.VerifyResponse{Message: "success", Service: true})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if apperrors.IsClientError(err) {
				c.JSON(http.StatusUnauthorized, auth.VerifyError{Err: apperrors.As(err).Message})
				return
			}
			middleware.AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, auth.VerifyResponse{
			Message:  "success",
			ID:       identity.ID,
			Email:    identity.Email,
			GoogleID: identity.GoogleID,
		})
	}
}
