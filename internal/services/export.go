package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/marketlens/bhavview/internal/models"
)

// Export kinds accepted by the export endpoint.
const (
	ExportFiltered = "filtered"
	ExportComplete = "complete"
	ExportTop      = "top"
)

// Header row mirrors the on-screen column order exactly.
var exportHeaders = []string{
	"Date", "Symbol", "Company Name", "Prev Close", "Close Price",
	"% Change", "Volume", "Delivered Qty", "% Delivery", "Turnover (₹ Cr)",
}

// ExportFilename names a download after its kind and trading date.
func ExportFilename(kind string, date time.Time) string {
	stamp := date.Format("20060102")
	switch kind {
	case ExportTop:
		return fmt.Sprintf("nse_top_performers_%s.csv", stamp)
	case ExportComplete:
		return fmt.Sprintf("nse_bhavcopy_complete_%s.csv", stamp)
	default:
		return fmt.Sprintf("nse_bhavcopy_filtered_%s.csv", stamp)
	}
}

// WriteCSV serializes rows with the display header row. Floats keep two
// decimals to match the table.
func WriteCSV(w io.Writer, rows []models.BhavRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.Symbol,
			r.CompanyName,
			formatPrice(r.PrevClose),
			formatPrice(r.ClosePrice),
			formatPrice(r.PctChange),
			strconv.FormatInt(r.Volume, 10),
			strconv.FormatInt(r.DeliveredQty, 10),
			formatPrice(r.PctDelivery),
			formatPrice(r.TurnoverCr),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// TopByColumn returns the n largest rows by a numeric column, taken from the
// full set regardless of active filters. The copy is stable-sorted
// descending so ties keep their published order.
func TopByColumn(rows []models.BhavRow, column string, n int) []models.BhavRow {
	top := make([]models.BhavRow, len(rows))
	copy(top, rows)
	SortRows(top, models.SortSpec{By: column, Ascending: false})
	if n < 0 {
		n = 0
	}
	return top[:min(n, len(top))]
}
