package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"roulette-table-backend/internal/config"
	"roulette-table-backend/internal/handlers"
	"roulette-table-backend/internal/middleware"
	"roulette-table-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var historyService *services.HistoryService
	if cfg.RedisAddr != "" {
		historyService, err = services.NewHistoryService(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer historyService.Close()
	} else {
		log.Println("REDIS_ADDR not set, round history disabled")
	}

	registry := services.NewRegistry(cfg.SpinWindow, historyService)
	router := services.NewRouter(registry)

	wsHandler := handlers.NewWebSocketHandler(router)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(middleware.CORSMiddleware())

	engine.GET("/game_ws", wsHandler.HandleWebSocket)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if historyService != nil {
		historyHandler := handlers.NewHistoryHandler(historyService)
		engine.GET("/api/tables/:id/rounds", historyHandler.GetRounds)
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
