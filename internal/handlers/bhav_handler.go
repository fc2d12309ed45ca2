package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/marketlens/bhavview/internal/models"
	"github.com/marketlens/bhavview/internal/nse"
	"github.com/marketlens/bhavview/internal/services"
	"github.com/marketlens/bhavview/internal/utils"
)

// BhavHandler handles HTTP requests for bhavcopy queries and exports
type BhavHandler struct {
	service *services.BhavService
	now     func() time.Time
}

// NewBhavHandler creates a new bhavcopy handler
func NewBhavHandler(service *services.BhavService) *BhavHandler {
	return &BhavHandler{
		service: service,
		now:     utils.NowIST,
	}
}

// RegisterRoutes registers all bhavcopy-related routes
func (h *BhavHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/bhavcopy", h.GetBhavcopyHandler).Methods("GET")
	router.HandleFunc("/bhavcopy/export", h.ExportBhavcopyHandler).Methods("GET")
	router.HandleFunc("/bhavcopy/indices", h.GetIndicesHandler).Methods("GET")
}

// parseQuery reads the shared date/filter/sort parameters. The date defaults
// to today in IST; filter bounds default to pass-everything.
func (h *BhavHandler) parseQuery(r *http.Request) (time.Time, models.QueryParams, error) {
	query := r.URL.Query()

	date := h.now()
	if val := query.Get("date"); val != "" {
		parsed, err := utils.ParseDate(val)
		if err != nil {
			return time.Time{}, models.QueryParams{}, err
		}
		date = parsed
	}

	params := models.QueryParams{
		Date:   date.Format("02-01-2006"),
		Filter: models.DefaultFilter(),
		Sort:   models.DefaultSort(),
	}

	if val := query.Get("min_change"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			params.Filter.MinChange = f
		}
	}
	if val := query.Get("max_change"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			params.Filter.MaxChange = f
		}
	}
	if val := query.Get("min_delivery"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			params.Filter.MinDelivery = f
		}
	}
	if val := query.Get("max_delivery"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			params.Filter.MaxDelivery = f
		}
	}
	if val := query.Get("min_volume"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			params.Filter.MinVolume = i
		}
	}
	if val := query.Get("min_turnover"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			params.Filter.MinTurnover = f
		}
	}
	if val := query.Get("index"); val != "" {
		params.Filter.Index = val
	}
	params.Filter.Search = query.Get("search")

	if val := query.Get("sort_by"); val != "" && models.ValidSortBy(val) {
		params.Sort.By = val
	}
	if val := query.Get("sort_order"); val != "" {
		params.Sort.Ascending = val == "asc"
	}

	if val := query.Get("page"); val != "" {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			params.Page = i
		}
	}
	if val := query.Get("page_size"); val != "" {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			params.PageSize = i
		}
	}

	return date, params, nil
}

// GetBhavcopyHandler handles the main table query
func (h *BhavHandler) GetBhavcopyHandler(w http.ResponseWriter, r *http.Request) {
	date, params, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.service.Query(date, params.Filter, params.Sort, params.Page, params.PageSize)
	if err != nil {
		h.writeFetchError(w, date, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// ExportBhavcopyHandler streams one of the three CSV downloads
func (h *BhavHandler) ExportBhavcopyHandler(w http.ResponseWriter, r *http.Request) {
	date, params, err := h.parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = services.ExportFiltered
	}
	switch kind {
	case services.ExportFiltered, services.ExportComplete, services.ExportTop:
	default:
		http.Error(w, "Invalid export kind: "+kind, http.StatusBadRequest)
		return
	}

	filename, rows, err := h.service.Export(date, kind, params.Filter, params.Sort, r.URL.Query().Get("column"))
	if err != nil {
		h.writeFetchError(w, date, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := services.WriteCSV(w, rows); err != nil {
		http.Error(w, "Failed to write CSV: "+err.Error(), http.StatusInternalServerError)
	}
}

// GetIndicesHandler returns the selectable index filters
func (h *BhavHandler) GetIndicesHandler(w http.ResponseWriter, r *http.Request) {
	indices := []map[string]string{
		{"id": models.IndexAll, "name": "All Stocks"},
	}
	for _, name := range nse.IndexNames() {
		indices = append(indices, map[string]string{"id": name, "name": name})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(indices)
}

// writeFetchError maps a pipeline failure: an unpublished date renders as
// the no-data state with a suggestion, anything else is a gateway error
// carrying the provider's message.
func (h *BhavHandler) writeFetchError(w http.ResponseWriter, date time.Time, err error) {
	if errors.Is(err, nse.ErrNoData) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(h.noDataResponse(date))
		return
	}
	http.Error(w, "Failed to fetch bhavcopy: "+err.Error(), http.StatusBadGateway)
}

// noDataResponse explains why a date has no bhavcopy and points at the
// nearest day that should have one.
func (h *BhavHandler) noDataResponse(date time.Time) models.NoDataResponse {
	display := date.Format("02-01-2006")
	resp := models.NoDataResponse{
		NoData:     true,
		Date:       display,
		Suggestion: utils.PrevTradingDay(date).Format("02-01-2006"),
	}

	now := h.now()
	switch {
	case utils.IsWeekend(date):
		resp.Message = fmt.Sprintf("%s is a weekend; markets were closed.", display)
	case utils.SameDay(date, now):
		resp.Message = "Today's bhavcopy is not out yet. NSE usually publishes it in the evening."
	default:
		resp.Message = fmt.Sprintf("No data for %s. It may have been a market holiday.", display)
	}
	return resp
}
