package api

import (
	"encoding/json"
	"net/http"
)

// HealthHandler responds to health check requests
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "bhavview",
		"version": "1.0.0",
	})
}
