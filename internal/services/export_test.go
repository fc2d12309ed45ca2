package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marketlens/bhavview/internal/models"
)

func TestExportFilename(t *testing.T) {
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	cases := map[string]string{
		ExportFiltered: "nse_bhavcopy_filtered_20260820.csv",
		ExportComplete: "nse_bhavcopy_complete_20260820.csv",
		ExportTop:      "nse_top_performers_20260820.csv",
	}
	for kind, want := range cases {
		if got := ExportFilename(kind, date); got != want {
			t.Errorf("Expected %s for %s, got %s", want, kind, got)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []models.BhavRow{
		{
			Date: "20-08-2026", Symbol: "RELIANCE", CompanyName: "Reliance Industries Limited",
			PrevClose: 2950, ClosePrice: 2980.55, PctChange: 1.04,
			Volume: 5634210, DeliveredQty: 2816234, PctDelivery: 49.99, TurnoverCr: 1672.45,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to re-read CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d records", len(records))
	}

	header := strings.Join(records[0], ",")
	want := "Date,Symbol,Company Name,Prev Close,Close Price,% Change,Volume,Delivered Qty,% Delivery,Turnover (₹ Cr)"
	if header != want {
		t.Errorf("Expected display header order, got %s", header)
	}

	row := records[1]
	if row[1] != "RELIANCE" || row[3] != "2950.00" || row[6] != "5634210" {
		t.Errorf("Unexpected row values: %v", row)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("Failed to write empty CSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("Expected header-only file, got %d lines", len(lines))
	}
}

func TestTopByColumn(t *testing.T) {
	rows := make([]models.BhavRow, 150)
	for i := range rows {
		rows[i] = models.BhavRow{
			Symbol:    fmt.Sprintf("SYM%03d", i),
			PctChange: float64(i % 50), // duplicate keys across the set
		}
	}

	top := TopByColumn(rows, models.SortByPctChange, 100)
	if len(top) != 100 {
		t.Fatalf("Expected 100 rows, got %d", len(top))
	}

	// Every included value is >= every excluded one.
	minIncluded := top[len(top)-1].PctChange
	for _, r := range top {
		if r.PctChange < minIncluded {
			minIncluded = r.PctChange
		}
	}
	included := make(map[string]bool, len(top))
	for _, r := range top {
		included[r.Symbol] = true
	}
	for _, r := range rows {
		if !included[r.Symbol] && r.PctChange > minIncluded {
			t.Errorf("Excluded %s (%v) beats included minimum %v", r.Symbol, r.PctChange, minIncluded)
		}
	}

	// The source slice keeps its order.
	if rows[0].Symbol != "SYM000" || rows[149].Symbol != "SYM149" {
		t.Errorf("Expected source untouched, got %s...%s", rows[0].Symbol, rows[149].Symbol)
	}
}

func TestTopByColumnSmallSet(t *testing.T) {
	rows := []models.BhavRow{
		{Symbol: "A", PctChange: 1},
		{Symbol: "B", PctChange: 2},
	}
	top := TopByColumn(rows, models.SortByPctChange, 100)
	if len(top) != 2 {
		t.Errorf("Expected min(n, len) rows, got %d", len(top))
	}
	if top[0].Symbol != "B" {
		t.Errorf("Expected B first, got %s", top[0].Symbol)
	}
}

func TestTopByColumnTiesKeepInputOrder(t *testing.T) {
	rows := []models.BhavRow{
		{Symbol: "EARLY", Volume: 100},
		{Symbol: "LATE", Volume: 100},
		{Symbol: "SMALL", Volume: 1},
	}
	top := TopByColumn(rows, models.SortByVolume, 2)
	if top[0].Symbol != "EARLY" || top[1].Symbol != "LATE" {
		t.Errorf("Expected deterministic tie order [EARLY LATE], got [%s %s]", top[0].Symbol, top[1].Symbol)
	}
}
