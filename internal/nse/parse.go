package nse

import (
	"strconv"
	"strings"

	"github.com/marketlens/bhavview/internal/models"
)

// SymbolColumn locates the symbol column in an NSE CSV header row. An exact
// case-insensitive "symbol" wins; otherwise the first header containing
// "symbol" is used. Returns -1 when no candidate exists.
func SymbolColumn(headers []string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), "symbol") {
			return i
		}
	}
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), "symbol") {
			return i
		}
	}
	return -1
}

// NameColumn locates the company-name column: the first header containing
// both "name" and "company" in any case. Returns -1 when absent.
func NameColumn(headers []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "name") && strings.Contains(lower, "company") {
			return i
		}
	}
	return -1
}

// CanonicalSymbol is the join key used everywhere: trimmed and uppercased.
func CanonicalSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseBhavcopy turns the raw CSV rows of a sec_bhavdata_full file into
// records. NSE pads both headers and values with spaces, so everything is
// trimmed before use. Rows shorter than the header are skipped.
func parseBhavcopy(records [][]string) []models.RawRecord {
	if len(records) < 2 {
		return nil
	}

	headers := records[0]
	columnMap := make(map[string]int)
	for i, header := range headers {
		columnMap[strings.TrimSpace(header)] = i
	}

	out := make([]models.RawRecord, 0, len(records)-1)
	for _, row := range records[1:] {
		getString := func(names ...string) string {
			for _, name := range names {
				if idx, ok := columnMap[name]; ok && idx < len(row) {
					if v := strings.TrimSpace(row[idx]); v != "" {
						return v
					}
				}
			}
			return ""
		}
		getFloat := func(names ...string) float64 {
			if v, err := strconv.ParseFloat(getString(names...), 64); err == nil {
				return v
			}
			return 0
		}
		getInt := func(names ...string) int64 {
			if v, err := strconv.ParseInt(getString(names...), 10, 64); err == nil {
				return v
			}
			return 0
		}

		rec := models.RawRecord{
			Symbol:       getString("SYMBOL"),
			Series:       getString("SERIES"),
			Date1:        getString("DATE1"),
			PrevClose:    getFloat("PREV_CLOSE"),
			OpenPrice:    getFloat("OPEN_PRICE"),
			HighPrice:    getFloat("HIGH_PRICE"),
			LowPrice:     getFloat("LOW_PRICE"),
			ClosePrice:   getFloat("CLOSE_PRICE"),
			TtlTrdQnty:   getInt("TTL_TRD_QNTY"),
			TurnoverLacs: getFloat("TURNOVER_LACS"),
			NoOfTrades:   getInt("NO_OF_TRADES"),
			DelivQty:     getString("DELIV_QTY"),
			DelivPer:     getString("DELIV_PER"),
		}
		if rec.Symbol == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// parseSymbolList extracts canonical symbols from an index constituent CSV
// using the tolerant column rule. A missing symbol column yields an empty
// list, not an error, so a layout change degrades instead of failing.
func parseSymbolList(records [][]string) []string {
	if len(records) < 2 {
		return nil
	}
	col := SymbolColumn(records[0])
	if col < 0 {
		return nil
	}
	out := make([]string, 0, len(records)-1)
	for _, row := range records[1:] {
		if col >= len(row) {
			continue
		}
		if sym := CanonicalSymbol(row[col]); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}

// parseSymbolNames extracts symbol -> company name from the EQUITY_L master.
// Either column missing yields an empty map.
func parseSymbolNames(records [][]string) map[string]string {
	if len(records) < 2 {
		return map[string]string{}
	}
	symCol := SymbolColumn(records[0])
	nameCol := NameColumn(records[0])
	if symCol < 0 || nameCol < 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(records)-1)
	for _, row := range records[1:] {
		if symCol >= len(row) || nameCol >= len(row) {
			continue
		}
		sym := CanonicalSymbol(row[symCol])
		name := strings.TrimSpace(row[nameCol])
		if sym != "" && name != "" {
			out[sym] = name
		}
	}
	return out
}
