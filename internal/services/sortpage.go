package services

import (
	"sort"
	"strings"

	"github.com/marketlens/bhavview/internal/models"
)

// SortRows orders rows in place by the requested column and direction. The
// sort is stable, so equal keys keep their current relative order.
func SortRows(rows []models.BhavRow, spec models.SortSpec) {
	key := sortKey(spec.By)
	sort.SliceStable(rows, func(i, j int) bool {
		if spec.Ascending {
			return key(rows[i], rows[j])
		}
		return key(rows[j], rows[i])
	})
}

// sortKey returns the ascending less-func for a column. Unknown columns fall
// back to the default.
func sortKey(by string) func(a, b models.BhavRow) bool {
	switch by {
	case models.SortByVolume:
		return func(a, b models.BhavRow) bool { return a.Volume < b.Volume }
	case models.SortByPctDelivery:
		return func(a, b models.BhavRow) bool { return a.PctDelivery < b.PctDelivery }
	case models.SortByTurnover:
		return func(a, b models.BhavRow) bool { return a.TurnoverCr < b.TurnoverCr }
	case models.SortBySymbol:
		return func(a, b models.BhavRow) bool { return strings.Compare(a.Symbol, b.Symbol) < 0 }
	default:
		return func(a, b models.BhavRow) bool { return a.PctChange < b.PctChange }
	}
}

// Paginate slices out a 1-indexed page. totalPages is ceil(n/pageSize); a
// page past the end yields an empty slice, never an error.
func Paginate(rows []models.BhavRow, page, pageSize int) ([]models.BhavRow, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(rows) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if page < 1 || start >= len(rows) {
		return []models.BhavRow{}, totalPages
	}
	end := min(start+pageSize, len(rows))
	return rows[start:end], totalPages
}
