package main

import (
	"fmt"
	"log"
	"os"

	"unit-commitment/internal/api/handlers"
	"unit-commitment/internal/api/middleware"
	"unit-commitment/internal/solver/bnb"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	optimizeHandler := handlers.NewOptimizeHandler(bnb.New)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/optimize", optimizeHandler.Optimize)
		api.POST("/compare", optimizeHandler.Compare)
		api.GET("/variants", handlers.Variants)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting unit commitment API on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
