package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/marketlens/bhavview/internal/config"
	"github.com/marketlens/bhavview/internal/handlers"
	"github.com/marketlens/bhavview/internal/middleware"
	"github.com/marketlens/bhavview/internal/nse"
	"github.com/marketlens/bhavview/internal/refdata"
	"github.com/marketlens/bhavview/internal/services"
	"github.com/marketlens/bhavview/web"
)

// SetupRouter configures all routes and returns the router
func SetupRouter(
	cfg *config.Config,
	client *nse.Client,
	cache *refdata.Cache,
) *mux.Router {
	// Create a new router
	router := mux.NewRouter()

	// Add health check endpoint
	router.HandleFunc("/api/health", HealthHandler).Methods("GET")

	// Create services
	bhavService := services.NewBhavService(client, cache, cfg.View.TopCount, cfg.View.DefaultPageSize)

	// Create handlers using services
	bhavHandler := handlers.NewBhavHandler(bhavService)
	marketHandler := handlers.NewMarketHandler()

	// Register API routes
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.Recover, middleware.RequestLogger)
	bhavHandler.RegisterRoutes(apiRouter)
	marketHandler.RegisterRoutes(apiRouter)

	// Serve static files from the embedded assets
	assets := web.GetFileSystem()
	router.PathPrefix("/static/").Handler(http.FileServer(assets))

	// Catch-all handler for serving the SPA
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// For API requests, let the router handle them
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		// For all other requests, serve the index page
		index, err := assets.Open("index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer index.Close()
		http.ServeContent(w, r, "index.html", time.Time{}, index)
	})

	return router
}
