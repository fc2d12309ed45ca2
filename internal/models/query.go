package models

import "math"

// Sortable columns. Values double as the sort_by query parameter.
const (
	SortByPctChange   = "pct_change"
	SortByVolume      = "volume"
	SortByPctDelivery = "pct_delivery"
	SortByTurnover    = "turnover"
	SortBySymbol      = "symbol"
)

// IndexAll disables index-membership filtering.
const IndexAll = "all"

// FilterCriteria holds the conjunctive row filters. All numeric bounds are
// inclusive. Zero-value bounds would silently filter, so use DefaultFilter
// and override.
type FilterCriteria struct {
	MinChange   float64 `json:"minChange"`
	MaxChange   float64 `json:"maxChange"`
	MinDelivery float64 `json:"minDelivery"`
	MaxDelivery float64 `json:"maxDelivery"`
	MinVolume   int64   `json:"minVolume"`
	MinTurnover float64 `json:"minTurnover"` // crores
	Index       string  `json:"index"`       // "", "all", or an index name
	Search      string  `json:"search"`      // substring over symbol or company name
}

// DefaultFilter passes every row.
func DefaultFilter() FilterCriteria {
	return FilterCriteria{
		MinChange:   math.Inf(-1),
		MaxChange:   math.Inf(1),
		MinDelivery: 0,
		MaxDelivery: 100,
		MinVolume:   0,
		MinTurnover: 0,
		Index:       IndexAll,
	}
}

// SortSpec orders the filtered rows. Ties keep their input order.
type SortSpec struct {
	By        string `json:"by"`
	Ascending bool   `json:"ascending"`
}

// DefaultSort matches the viewer default: biggest gainers first.
func DefaultSort() SortSpec {
	return SortSpec{By: SortByPctChange, Ascending: false}
}

// ValidSortBy reports whether by names a sortable column.
func ValidSortBy(by string) bool {
	switch by {
	case SortByPctChange, SortByVolume, SortByPctDelivery, SortByTurnover, SortBySymbol:
		return true
	}
	return false
}

// QueryParams is one complete bhavcopy query as parsed from the request.
type QueryParams struct {
	Date     string         `json:"date"` // dd-mm-yyyy
	Filter   FilterCriteria `json:"filter"`
	Sort     SortSpec       `json:"sort"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}
