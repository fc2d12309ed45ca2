package services

import (
	"fmt"
	"log"
	"time"

	"github.com/marketlens/bhavview/internal/models"
)

// BhavcopyFetcher fetches one trading day's raw records.
type BhavcopyFetcher interface {
	FetchBhavcopy(date time.Time) ([]models.RawRecord, error)
}

// ReferenceData provides the cached index constituents and company names.
type ReferenceData interface {
	IndexMembers(index string) map[string]bool
	SymbolNames() map[string]string
}

// BhavService runs the whole per-request pipeline: fetch, normalize, filter,
// summarize, sort, paginate. It holds no per-day state; only the reference
// cache behind ReferenceData is shared between requests.
type BhavService struct {
	client   BhavcopyFetcher
	refdata  ReferenceData
	topCount int
	pageSize int
}

func NewBhavService(client BhavcopyFetcher, refdata ReferenceData, topCount, defaultPageSize int) *BhavService {
	return &BhavService{
		client:   client,
		refdata:  refdata,
		topCount: topCount,
		pageSize: defaultPageSize,
	}
}

// Query renders one page of the viewer for a trading date. A date NSE never
// published propagates nse.ErrNoData for the handler to turn into the
// no-data state.
func (s *BhavService) Query(date time.Time, filter models.FilterCriteria, sortSpec models.SortSpec, page, pageSize int) (*models.BhavcopyView, error) {
	if pageSize < 1 {
		pageSize = s.pageSize
	}
	if page < 1 {
		page = 1
	}
	if !models.ValidSortBy(sortSpec.By) {
		sortSpec = models.DefaultSort()
	}

	raw, err := s.client.FetchBhavcopy(date)
	if err != nil {
		return nil, err
	}

	rows := NormalizeRecords(raw, s.refdata.SymbolNames())
	filtered, indexSkipped := ApplyFilters(rows, filter, s.refdata.IndexMembers)
	summary := Summarize(filtered)
	SortRows(filtered, sortSpec)
	pageRows, totalPages := Paginate(filtered, page, pageSize)

	view := &models.BhavcopyView{
		Date:          date.Format("02-01-2006"),
		TotalRecords:  len(rows),
		FilteredCount: len(filtered),
		Summary:       summary,
		Rows:          pageRows,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
		SortBy:        sortSpec.By,
		SortAscending: sortSpec.Ascending,
	}
	if indexSkipped {
		view.Warnings = append(view.Warnings,
			fmt.Sprintf("%s constituent list is unavailable; index filter skipped", filter.Index))
	}

	log.Printf("Bhavcopy %s: %d records, %d after filters, page %d/%d",
		view.Date, view.TotalRecords, view.FilteredCount, page, totalPages)
	return view, nil
}

// Export produces the rows and filename for one download kind. The filtered
// export honors the active filters and sort; the complete export is the
// normalized file in published order; the top export ranks the full set by a
// numeric column.
func (s *BhavService) Export(date time.Time, kind string, filter models.FilterCriteria, sortSpec models.SortSpec, column string) (string, []models.BhavRow, error) {
	raw, err := s.client.FetchBhavcopy(date)
	if err != nil {
		return "", nil, err
	}
	rows := NormalizeRecords(raw, s.refdata.SymbolNames())

	var out []models.BhavRow
	switch kind {
	case ExportComplete:
		out = rows
	case ExportTop:
		if !models.ValidSortBy(column) || column == models.SortBySymbol {
			column = models.SortByPctChange
		}
		out = TopByColumn(rows, column, s.topCount)
	case ExportFiltered:
		if !models.ValidSortBy(sortSpec.By) {
			sortSpec = models.DefaultSort()
		}
		out, _ = ApplyFilters(rows, filter, s.refdata.IndexMembers)
		SortRows(out, sortSpec)
	default:
		return "", nil, fmt.Errorf("unknown export kind %q", kind)
	}
	return ExportFilename(kind, date), out, nil
}
