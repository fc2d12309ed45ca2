package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/marketlens/bhavview/internal/api"
	"github.com/marketlens/bhavview/internal/config"
	"github.com/marketlens/bhavview/internal/db"
	"github.com/marketlens/bhavview/internal/nse"
	"github.com/marketlens/bhavview/internal/refdata"
	"github.com/marketlens/bhavview/internal/tasks"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize Redis client; the app works without it, the reference data
	// cache just loses its second level
	redisClient, err := db.ConnectRedis(cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisClient = nil
	}

	// Initialize the NSE archives client and the reference data cache
	client := nse.NewClient(cfg.NSE.ArchivesURL, cfg.NSE.UserAgent, cfg.NSE.FetchTimeout)
	cache := refdata.NewCache(client, cfg.Cache.TTL, redisClient)

	// Initialize scheduled tasks
	taskManager := tasks.NewManager(cache)
	taskManager.StartScheduledTasks()

	// Initialize router
	router := api.SetupRouter(cfg, client, cache)
	if os.Getenv("LOG_ROUTES") == "true" {
		api.LogRoutes(router)
	}

	// Set up CORS
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Allow all origins for API access
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	// Apply CORS middleware
	handler := corsMiddleware.Handler(router)

	// Start the server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, handler))
}
