package services

import (
	"math"
	"strconv"
	"time"

	"github.com/marketlens/bhavview/internal/models"
	"github.com/marketlens/bhavview/internal/nse"
)

// DATE1 as published, plus fallbacks seen in older archive files.
var bhavDateLayouts = []string{"02-Jan-2006", "2006-01-02", "02-01-2006"}

// NormalizeRecords derives the display row for every raw record, in input
// order, one output per input. Derivations run first and may produce NaN or
// Inf (zero previous close, "-" delivery fields); a single blanket pass at
// the end replaces every non-finite numeric with 0, so downstream code never
// sees one.
func NormalizeRecords(raw []models.RawRecord, names map[string]string) []models.BhavRow {
	rows := make([]models.BhavRow, len(raw))
	for i, rec := range raw {
		symbol := nse.CanonicalSymbol(rec.Symbol)
		name := names[symbol]
		if name == "" {
			name = symbol
		}

		pctChange := (rec.ClosePrice - rec.PrevClose) / rec.PrevClose * 100
		delivQty := toNumber(rec.DelivQty)
		pctDelivery := toNumber(rec.DelivPer)
		turnoverCr := rec.TurnoverLacs / 100

		rows[i] = models.BhavRow{
			Date:         displayDate(rec.Date1),
			Symbol:       symbol,
			CompanyName:  name,
			PrevClose:    round2(rec.PrevClose),
			ClosePrice:   round2(rec.ClosePrice),
			PctChange:    finiteOrZero(round2(pctChange)),
			Volume:       rec.TtlTrdQnty,
			DeliveredQty: int64(finiteOrZero(delivQty)),
			PctDelivery:  finiteOrZero(round2(pctDelivery)),
			TurnoverCr:   finiteOrZero(round2(turnoverCr)),
		}
	}
	return rows
}

// toNumber parses an NSE numeric field that may be "-" or empty. Unparseable
// values become NaN so the blanket fill decides, not the parser.
func toNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// finiteOrZero is the blanket fill: NaN and ±Inf become 0.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// displayDate converts DATE1 to the dd-mm-yyyy display form. Anything no
// layout matches passes through untouched.
func displayDate(raw string) string {
	for _, layout := range bhavDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02-01-2006")
		}
	}
	return raw
}

// Summarize aggregates the filtered rows for the metrics strip. Averages over
// an empty set are 0, not NaN.
func Summarize(rows []models.BhavRow) models.Summary {
	if len(rows) == 0 {
		return models.Summary{}
	}
	var s models.Summary
	for _, r := range rows {
		s.AvgPctChange += r.PctChange
		s.AvgPctDelivery += r.PctDelivery
		s.TotalVolume += r.Volume
		s.TotalTurnoverCr += r.TurnoverCr
	}
	n := float64(len(rows))
	s.AvgPctChange = round2(s.AvgPctChange / n)
	s.AvgPctDelivery = round2(s.AvgPctDelivery / n)
	s.TotalTurnoverCr = round2(s.TotalTurnoverCr)
	return s
}
