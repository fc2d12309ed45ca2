package nse

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// Trimmed sec_bhavdata_full sample. NSE pads headers and values with spaces
// and prints "-" for delivery fields on some series.
const bhavcopyCSV = `SYMBOL, SERIES, DATE1, PREV_CLOSE, OPEN_PRICE, HIGH_PRICE, LOW_PRICE, LAST_PRICE, CLOSE_PRICE, AVG_PRICE, TTL_TRD_QNTY, TURNOVER_LACS, NO_OF_TRADES, DELIV_QTY, DELIV_PER
RELIANCE, EQ, 20-Aug-2026, 2950.00, 2955.00, 2990.50, 2940.10, 2981.00, 2980.55, 2968.31, 5634210, 167244.95, 245871, 2816234, 49.99
TCS, EQ, 20-Aug-2026, 4102.35, 4110.00, 4150.00, 4089.00, 4120.90, 4121.45, 4118.20, 1823450, 75095.65, 98234, 1025411, 56.24
IDEA, BE, 20-Aug-2026, 13.45, 13.50, 13.80, 13.20, 13.60, 13.55, 13.52, 98234511, 13281.30, 45122, -, -
`

const nifty50CSV = `Company Name,Industry,Symbol,Series,ISIN Code
Reliance Industries Ltd.,Oil Gas & Consumable Fuels,RELIANCE,EQ,INE002A01018
Tata Consultancy Services Ltd.,Information Technology,TCS,EQ,INE467B01029
`

const equityCSV = `SYMBOL,NAME OF COMPANY, SERIES, DATE OF LISTING, PAID UP VALUE, MARKET LOT, ISIN NUMBER, FACE VALUE
RELIANCE,Reliance Industries Limited, EQ, 29-NOV-1995, 10, 1, INE002A01018, 10
TCS,Tata Consultancy Services Limited, EQ, 25-AUG-2004, 1, 1, INE467B01029, 1
`

func newTestClient(url string) *Client {
	return NewClient(url, "Mozilla/5.0", 5*time.Second)
}

func TestFetchBhavcopy(t *testing.T) {
	var gotPath, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(bhavcopyCSV))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	records, err := client.FetchBhavcopy(date)
	if err != nil {
		t.Fatalf("Failed to fetch bhavcopy: %v", err)
	}

	if gotPath != "/products/content/sec_bhavdata_full_20082026.csv" {
		t.Errorf("Expected DDMMYYYY bhavcopy path, got %s", gotPath)
	}
	if gotAgent != "Mozilla/5.0" {
		t.Errorf("Expected browser user agent, got %q", gotAgent)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	rel := records[0]
	if rel.Symbol != "RELIANCE" || rel.Series != "EQ" {
		t.Errorf("Expected RELIANCE/EQ, got %s/%s", rel.Symbol, rel.Series)
	}
	if rel.Date1 != "20-Aug-2026" {
		t.Errorf("Expected trimmed DATE1, got %q", rel.Date1)
	}
	if rel.PrevClose != 2950.00 || rel.ClosePrice != 2980.55 {
		t.Errorf("Expected prices 2950.00/2980.55, got %v/%v", rel.PrevClose, rel.ClosePrice)
	}
	if rel.TtlTrdQnty != 5634210 {
		t.Errorf("Expected volume 5634210, got %d", rel.TtlTrdQnty)
	}
	if rel.DelivQty != "2816234" || rel.DelivPer != "49.99" {
		t.Errorf("Expected delivery fields preserved, got %q/%q", rel.DelivQty, rel.DelivPer)
	}

	// Unreported delivery stays textual for the normalizer to interpret.
	idea := records[2]
	if idea.DelivQty != "-" || idea.DelivPer != "-" {
		t.Errorf("Expected dash delivery fields, got %q/%q", idea.DelivQty, idea.DelivPer)
	}
}

func TestFetchBhavcopyNoData(t *testing.T) {
	// 404 means the file was never published for that date.
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFound.Close()

	_, err := newTestClient(notFound.URL).FetchBhavcopy(time.Now())
	if err != ErrNoData {
		t.Errorf("Expected ErrNoData for 404, got %v", err)
	}

	// A header-only file also counts as no data.
	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("SYMBOL, SERIES, DATE1, PREV_CLOSE, CLOSE_PRICE, TTL_TRD_QNTY, TURNOVER_LACS, DELIV_QTY, DELIV_PER\n"))
	}))
	defer empty.Close()

	_, err = newTestClient(empty.URL).FetchBhavcopy(time.Now())
	if err != ErrNoData {
		t.Errorf("Expected ErrNoData for header-only file, got %v", err)
	}
}

func TestFetchBhavcopyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "archive maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchBhavcopy(time.Now())
	if err == nil || err == ErrNoData {
		t.Fatalf("Expected transport error for 503, got %v", err)
	}
}

func TestFetchIndexConstituents(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(nifty50CSV))
	}))
	defer server.Close()

	symbols, err := newTestClient(server.URL).FetchIndexConstituents("NIFTY50")
	if err != nil {
		t.Fatalf("Failed to fetch constituents: %v", err)
	}
	if gotPath != "/content/indices/ind_nifty50list.csv" {
		t.Errorf("Expected nifty50 list path, got %s", gotPath)
	}
	if len(symbols) != 2 || symbols[0] != "RELIANCE" || symbols[1] != "TCS" {
		t.Errorf("Expected [RELIANCE TCS], got %v", symbols)
	}

	// Unknown index names are caller bugs, not degraded fetches.
	if _, err := newTestClient(server.URL).FetchIndexConstituents("NIFTY9000"); err == nil {
		t.Errorf("Expected error for unknown index")
	}
}

func TestFetchEquityList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(equityCSV))
	}))
	defer server.Close()

	names, err := newTestClient(server.URL).FetchEquityList()
	if err != nil {
		t.Fatalf("Failed to fetch equity list: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("Expected 2 names, got %d", len(names))
	}
	if names["RELIANCE"] != "Reliance Industries Limited" {
		t.Errorf("Expected Reliance name, got %q", names["RELIANCE"])
	}
}

func TestSymbolColumnResolution(t *testing.T) {
	// Exact case-insensitive match wins over a substring match.
	headers := []string{"Company Name", "Symbol Code", "SYMBOL"}
	if col := SymbolColumn(headers); col != 2 {
		t.Errorf("Expected exact match at 2, got %d", col)
	}

	// Substring fallback when no exact header exists.
	headers = []string{"Company Name", "Symbol Code", "ISIN"}
	if col := SymbolColumn(headers); col != 1 {
		t.Errorf("Expected substring match at 1, got %d", col)
	}

	// Padded headers still match exactly.
	headers = []string{" Company Name", " Symbol "}
	if col := SymbolColumn(headers); col != 1 {
		t.Errorf("Expected padded exact match at 1, got %d", col)
	}

	if col := SymbolColumn([]string{"ISIN", "Industry"}); col != -1 {
		t.Errorf("Expected -1 for missing column, got %d", col)
	}
}

func TestNameColumnResolution(t *testing.T) {
	headers := []string{"SYMBOL", "NAME OF COMPANY", "SERIES"}
	if col := NameColumn(headers); col != 1 {
		t.Errorf("Expected name column at 1, got %d", col)
	}
	// "name" alone is not enough; it must mention the company.
	if col := NameColumn([]string{"SYMBOL", "Index Name"}); col != -1 {
		t.Errorf("Expected -1 without a company name header, got %d", col)
	}
}
