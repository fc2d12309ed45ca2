package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/marketlens/bhavview/internal/models"
	"github.com/marketlens/bhavview/internal/utils"
)

// MarketHandler reports the IST trading session for the status banner
type MarketHandler struct {
	now func() time.Time
}

func NewMarketHandler() *MarketHandler {
	return &MarketHandler{now: utils.NowIST}
}

// RegisterRoutes registers market-related routes
func (h *MarketHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/market/status", h.GetMarketStatusHandler).Methods("GET")
}

// GetMarketStatusHandler handles the session banner query
func (h *MarketHandler) GetMarketStatusHandler(w http.ResponseWriter, r *http.Request) {
	now := h.now().In(utils.IST)

	status := models.MarketStatus{
		ISTTime:   now.Format("15:04"),
		TradingAt: "09:15-15:30 IST",
	}
	switch {
	case utils.IsWeekend(now):
		status.Status = "weekend"
		status.Message = "Markets are closed for the weekend."
	case utils.IsMarketOpen(now):
		status.Status = "open"
		status.Message = "Market is open. Today's bhavcopy arrives after the close."
	case utils.IsBeforeOpen(now):
		status.Status = "pre-open"
		status.Message = "Market opens at 09:15 IST. Showing the previous trading day until today's bhavcopy is published."
	default:
		status.Status = "closed"
		status.Message = "Market is closed."
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
