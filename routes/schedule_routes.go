package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/usuda-masaru/hoiku-navi/controllers"
)

func SetupScheduleRoutes(protected *gin.RouterGroup, scheduleController *controllers.ScheduleController) {
	schedules := protected.Group("/schedules")
	{
		schedules.GET("", scheduleController.ListSchedules)
		schedules.GET("/:id", scheduleController.GetSchedule)
		schedules.POST("", scheduleController.CreateSchedule)
		schedules.PUT("/:id", scheduleController.UpdateSchedule)
		schedules.DELETE("/:id", scheduleController.DeleteSchedule)
		schedules.GET("/:id/calendar", scheduleController.ToCalendar)
		schedules.GET("/:id/ics", scheduleController.DownloadICS)
	}
}
