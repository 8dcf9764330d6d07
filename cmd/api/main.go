package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ventilation-voi/internal/api/handlers"
	"ventilation-voi/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Log working directory and important paths for debugging
	wd, err := os.Getwd()
	if err == nil {
		log.Printf("Working directory: %s", wd)
		roomDir := filepath.Join(wd, "examples", "rooms")
		if info, err := os.Stat(roomDir); err == nil && info.IsDir() {
			log.Printf("Room preset directory found: %s", roomDir)
		} else {
			log.Printf("Room preset directory not found at: %s (error: %v)", roomDir, err)
		}
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	voiHandler := handlers.NewVoiHandler()
	roomHandler := handlers.NewRoomHandler()
	priorHandler := handlers.NewPriorHandler()
	corrosionHandler := handlers.NewCorrosionHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/decide", voiHandler.Decide)
		api.POST("/voi", voiHandler.RunVoi)

		api.GET("/rooms", roomHandler.ListRooms)
		api.GET("/priors", priorHandler.ListPriors)

		api.POST("/corrosion/fit", corrosionHandler.Fit)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
