package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/middleware"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/joshua-takyi/agenda/internal/services"
)

type contactoRequest struct {
	Email string `json:"email"`
}

func ListUsuariosHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuarios, err := us.ListUsuarios(c.Request.Context(), c.Request.URL.Query())
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(usuarios, len(usuarios)))
	}
}

func GetUsuarioHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, err := us.GetUsuario(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(usuario, ""))
	}
}

func CreateUsuarioHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UsuarioInput
		if !bindJSON(c, &in) {
			return
		}
		id, err := us.CreateUsuario(c.Request.Context(), in)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		respondCreated(c, id, "usuario created")
	}
}

func UpdateUsuarioHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.UsuarioInput
		if !bindJSON(c, &in) {
			return
		}
		res, err := us.UpdateUsuario(c.Request.Context(), param(c, "id"), in)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "usuario updated"))
	}
}

func DeleteUsuarioHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := us.DeleteUsuario(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		respondDeleted(c, n)
	}
}

func ListContactosHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactos, err := us.Contactos(c.Request.Context(), param(c, "id"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(contactos, len(contactos)))
	}
}

func AddContactoHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactoRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := us.AddContacto(c.Request.Context(), param(c, "id"), req.Email)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "contacto added"))
	}
}

func RemoveContactoHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contactoRequest
		if !bindJSON(c, &req) {
			return
		}
		res, err := us.RemoveContacto(c.Request.Context(), param(c, "id"), req.Email)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(res, "contacto removed"))
	}
}

// SearchContactosHandler serves /usuarios/:id/contactos/:nombre, where :id
// is the email of the user whose contacts are searched.
func SearchContactosHandler(us *services.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		contactos, err := us.SearchContactos(c.Request.Context(), param(c, "id"), param(c, "nombre"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(contactos, len(contactos)))
	}
}
