package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sagm07/SolarOS/internal/api/handlers"
	"github.com/sagm07/SolarOS/internal/api/middleware"
	"github.com/sagm07/SolarOS/internal/logging"
)

func main() {
	log := logging.New("api").Level(logging.Level())

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	optimizeHandler := handlers.NewOptimizeHandler()
	replayHandler := handlers.NewReplayHandler()
	uncertaintyHandler := handlers.NewUncertaintyHandler()
	portfolioHandler := handlers.NewPortfolioHandler()
	siteHandler := handlers.NewSiteHandler(os.Getenv("SITE_CATALOG_FILE"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/optimize", optimizeHandler.RunOptimize)
		api.POST("/optimize/compare", optimizeHandler.CompareOptimize)

		api.POST("/replay", replayHandler.RunReplay)
		api.POST("/uncertainty", uncertaintyHandler.RunUncertainty)
		api.POST("/portfolio", portfolioHandler.RunAllocation)

		api.GET("/sites", siteHandler.ListSites)
		api.GET("/modes", handlers.ListModes)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
