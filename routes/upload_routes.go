package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/usuda-masaru/hoiku-navi/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/presign", uploadController.GetPresignedURL)
		uploads.POST("/delete", uploadController.DeletePhoto)
	}
}
