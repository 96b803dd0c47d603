package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/usuda-masaru/hoiku-navi/controllers"
)

func SetupFacilityRoutes(protected *gin.RouterGroup, facilityController *controllers.FacilityController) {
	facilities := protected.Group("/facilities")
	{
		facilities.GET("", facilityController.ListFacilities)
		facilities.GET("/map", facilityController.MapFacilities)
		facilities.GET("/:id", facilityController.GetFacility)
		facilities.POST("", facilityController.CreateFacility)
		facilities.PUT("/:id", facilityController.UpdateFacility)
		facilities.DELETE("/:id", facilityController.DeleteFacility)
	}
}
