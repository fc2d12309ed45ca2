package nse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/marketlens/bhavview/internal/models"
)

// ErrNoData means NSE has not published a bhavcopy for the requested date
// (holiday, weekend, or today's file not out yet). Callers render it as a
// state, not a failure.
var ErrNoData = errors.New("no bhavcopy published for date")

// Index constituent files served under /content/indices/.
var indexFiles = map[string]string{
	"NIFTY50":  "ind_nifty50list.csv",
	"NIFTY100": "ind_nifty100list.csv",
	"NIFTY200": "ind_nifty200list.csv",
	"NIFTY500": "ind_nifty500list.csv",
}

// IndexNames returns the selectable index names in display order.
func IndexNames() []string {
	return []string{"NIFTY50", "NIFTY100", "NIFTY200", "NIFTY500"}
}

// Client fetches published CSVs from the NSE archives host. The archives
// site rejects Go's default user agent, so every request carries a browser
// one.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// get performs one archive GET and returns the parsed CSV rows. A 404 maps
// to ErrNoData; any other non-200 becomes an error carrying the status.
func (c *Client) get(path string) ([][]string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status code %d for %s: %s",
			resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	csvReader := csv.NewReader(resp.Body)
	csvReader.FieldsPerRecord = -1 // NSE rows are occasionally ragged
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV from %s: %w", path, err)
	}
	return records, nil
}

// FetchBhavcopy downloads the full bhavcopy for a trading date. A published
// file with a header but no rows counts as no data.
func (c *Client) FetchBhavcopy(date time.Time) ([]models.RawRecord, error) {
	path := fmt.Sprintf("/products/content/sec_bhavdata_full_%s.csv", date.Format("02012006"))
	records, err := c.get(path)
	if err != nil {
		return nil, err
	}
	rows := parseBhavcopy(records)
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

// FetchIndexConstituents downloads one NIFTY constituent list and returns
// its canonical symbols.
func (c *Client) FetchIndexConstituents(index string) ([]string, error) {
	file, ok := indexFiles[strings.ToUpper(strings.TrimSpace(index))]
	if !ok {
		return nil, fmt.Errorf("unknown index %q", index)
	}
	records, err := c.get("/content/indices/" + file)
	if err != nil {
		return nil, err
	}
	return parseSymbolList(records), nil
}

// FetchEquityList downloads the listed-equities master and returns the
// symbol to company-name map.
func (c *Client) FetchEquityList() (map[string]string, error) {
	records, err := c.get("/content/equities/EQUITY_L.csv")
	if err != nil {
		return nil, err
	}
	return parseSymbolNames(records), nil
}
