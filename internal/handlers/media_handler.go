package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/media"
	"github.com/joshua-takyi/agenda/internal/middleware"
	"github.com/joshua-takyi/agenda/internal/models"
	"github.com/joshua-takyi/agenda/internal/services"
)

// MaxUploadBytes caps the image accepted by the upload endpoint.
const MaxUploadBytes = 10 << 20

type imageRequest struct {
	FolderName string `json:"folderName"`
	ImageName  string `json:"imageName"`
}

type imagesResponse struct {
	Message    string        `json:"message"`
	TotalCount int           `json:"total_count"`
	Resources  []media.Asset `json:"resources"`
}

// GreatestHandler counts the images stored under ?folderName=.
func GreatestHandler(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := ms.CountFolder(c.Request.Context(), query(c, "folderName"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, count)
	}
}

func FindImageHandler(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := ms.FindImage(c.Request.Context(), query(c, "folderName"), query(c, "imageName"))
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		message := "success"
		if res.TotalCount == 0 {
			message = "not found"
		}
		c.JSON(http.StatusOK, imagesResponse{Message: message, TotalCount: res.TotalCount, Resources: res.Assets})
	}
}

// UploadImageHandler takes a multipart form with folderName, imageName and
// the image file.
func UploadImageHandler(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+(1<<20))

		fileHeader, err := c.FormFile("image")
		if err != nil {
			middleware.AbortWithError(c, apperrors.BadRequest("image file is required"))
			return
		}
		if fileHeader.Size > MaxUploadBytes {
			middleware.AbortWithError(c, apperrors.BadRequest("image exceeds %d bytes", MaxUploadBytes))
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			middleware.AbortWithError(c, apperrors.BadRequest("unreadable image: %v", err))
			return
		}
		defer file.Close()

		image, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes))
		if err != nil {
			middleware.AbortWithError(c, apperrors.BadRequest("unreadable image: %v", err))
			return
		}

		asset, err := ms.Upload(c.Request.Context(), c.PostForm("folderName"), c.PostForm("imageName"), image)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(asset, "success"))
	}
}

func DeleteImageHandler(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req imageRequest
		if !bindJSON(c, &req) {
			return
		}
		result, err := ms.DeleteImage(c.Request.Context(), req.FolderName, req.ImageName)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"result": result}, "success"))
	}
}

// DeleteFolderHandler removes a folder and everything in it. A failure
// names the phase that failed; repeating the request is safe.
func DeleteFolderHandler(ms *services.MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req imageRequest
		if !bindJSON(c, &req) {
			return
		}
		deletion, err := ms.DeleteFolder(c.Request.Context(), req.FolderName)
		var phaseErr *services.PhaseError
		if errors.As(err, &phaseErr) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"code":    apperrors.ErrInternal.Code,
				"error":   "folder deletion failed, retry to resume",
				"phase":   phaseErr.Phase,
			})
			return
		}
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(deletion, "success"))
	}
}
