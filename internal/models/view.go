package models

// Summary aggregates the filtered set for the metrics strip.
type Summary struct {
	AvgPctChange    float64 `json:"avgPctChange"`
	AvgPctDelivery  float64 `json:"avgPctDelivery"`
	TotalVolume     int64   `json:"totalVolume"`
	TotalTurnoverCr float64 `json:"totalTurnoverCr"`
}

// BhavcopyView is the full query response: one page of rows plus everything
// the table chrome needs.
type BhavcopyView struct {
	Date          string    `json:"date"` // dd-mm-yyyy
	TotalRecords  int       `json:"totalRecords"`
	FilteredCount int       `json:"filteredCount"`
	Summary       Summary   `json:"summary"`
	Rows          []BhavRow `json:"rows"`
	Page          int       `json:"page"`
	PageSize      int       `json:"pageSize"`
	TotalPages    int       `json:"totalPages"`
	SortBy        string    `json:"sortBy"`
	SortAscending bool      `json:"sortAscending"`
	Warnings      []string  `json:"warnings,omitempty"`
}

// NoDataResponse is returned when NSE has published nothing for the date.
type NoDataResponse struct {
	NoData     bool   `json:"noData"`
	Date       string `json:"date"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"` // nearest likely trading day
}

// MarketStatus describes the IST trading session at request time.
type MarketStatus struct {
	Status    string `json:"status"` // open, closed, weekend
	Message   string `json:"message"`
	ISTTime   string `json:"istTime"`
	TradingAt string `json:"tradingAt,omitempty"` // session bounds for the banner
}
