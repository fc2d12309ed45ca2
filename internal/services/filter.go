package services

import (
	"strings"

	"github.com/marketlens/bhavview/internal/models"
)

// ApplyFilters keeps the rows matching every criterion, preserving input
// order. All numeric bounds are inclusive. The returned flag is true when an
// index filter was requested but its constituent set is unavailable; the
// filter is then skipped entirely so an NSE outage widens results instead of
// blanking them.
func ApplyFilters(rows []models.BhavRow, criteria models.FilterCriteria, members func(string) map[string]bool) ([]models.BhavRow, bool) {
	indexSkipped := false
	var indexSet map[string]bool
	if wantIndex(criteria.Index) {
		indexSet = members(criteria.Index)
		if len(indexSet) == 0 {
			indexSet = nil
			indexSkipped = true
		}
	}

	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]models.BhavRow, 0, len(rows))
	for _, r := range rows {
		if r.PctChange < criteria.MinChange || r.PctChange > criteria.MaxChange {
			continue
		}
		if r.PctDelivery < criteria.MinDelivery || r.PctDelivery > criteria.MaxDelivery {
			continue
		}
		if r.Volume < criteria.MinVolume {
			continue
		}
		if r.TurnoverCr < criteria.MinTurnover {
			continue
		}
		if indexSet != nil && !indexSet[r.Symbol] {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Symbol), search) &&
			!strings.Contains(strings.ToLower(r.CompanyName), search) {
			continue
		}
		out = append(out, r)
	}
	return out, indexSkipped
}

func wantIndex(index string) bool {
	index = strings.TrimSpace(index)
	return index != "" && !strings.EqualFold(index, models.IndexAll)
}
