package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/usuda-masaru/hoiku-navi/config"
	"github.com/usuda-masaru/hoiku-navi/routes"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, relying on environment")
	}

	cfg := config.Load()

	// Initialize database
	db := config.InitDB(cfg)

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, cfg)

	// Start the server
	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
