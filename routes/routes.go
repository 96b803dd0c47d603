package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/usuda-masaru/hoiku-navi/config"
	"github.com/usuda-masaru/hoiku-navi/controllers"
	"github.com/usuda-masaru/hoiku-navi/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	facilityController := controllers.NewFacilityController(db, config.NewGeocodingConfig(cfg.GoogleMapsAPIKey))
	scheduleController := controllers.NewScheduleController(db)
	impressionController := controllers.NewImpressionController(db)
	dashboardController := controllers.NewDashboardController(db)
	uploadController := controllers.NewUploadController(db, cfg.Storage)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.GET("/profile", authController.GetProfile)

		protected.GET("/dashboard", dashboardController.GetDashboard)

		SetupFacilityRoutes(protected, facilityController)
		SetupScheduleRoutes(protected, scheduleController)
		SetupImpressionRoutes(protected, impressionController)
		SetupUploadRoutes(protected, uploadController)
	}
}
