package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/usuda-masaru/hoiku-navi/controllers"
)

func SetupImpressionRoutes(protected *gin.RouterGroup, impressionController *controllers.ImpressionController) {
	impressions := protected.Group("/impressions")
	{
		impressions.GET("", impressionController.ListImpressions)
		impressions.GET("/:id", impressionController.GetImpression)
		impressions.POST("", impressionController.CreateImpression)
		impressions.PUT("/:id", impressionController.UpdateImpression)
		impressions.DELETE("/:id", impressionController.DeleteImpression)
	}
}
