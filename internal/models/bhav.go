package models

// RawRecord is one row of the NSE full bhavcopy (sec_bhavdata_full) exactly as
// published. Delivery fields stay strings because NSE prints "-" for series
// without delivery reporting; the normalizer decides what they mean.
type RawRecord struct {
	Symbol       string  `json:"symbol"`       // SYMBOL
	Series       string  `json:"series"`       // SERIES (EQ, BE, SM, ...)
	Date1        string  `json:"date1"`        // DATE1, dd-Mon-yyyy
	PrevClose    float64 `json:"prevClose"`    // PREV_CLOSE
	OpenPrice    float64 `json:"openPrice"`    // OPEN_PRICE
	HighPrice    float64 `json:"highPrice"`    // HIGH_PRICE
	LowPrice     float64 `json:"lowPrice"`     // LOW_PRICE
	ClosePrice   float64 `json:"closePrice"`   // CLOSE_PRICE
	TtlTrdQnty   int64   `json:"ttlTrdQnty"`   // TTL_TRD_QNTY
	TurnoverLacs float64 `json:"turnoverLacs"` // TURNOVER_LACS
	NoOfTrades   int64   `json:"noOfTrades"`   // NO_OF_TRADES
	DelivQty     string  `json:"delivQty"`     // DELIV_QTY, may be "-"
	DelivPer     string  `json:"delivPer"`     // DELIV_PER, may be "-"
}

// BhavRow is the normalized, display-ready form of a RawRecord. Every numeric
// field is finite; the normalizer replaces NaN/Inf produced by derivations
// (zero previous close, unreported delivery) with 0.
type BhavRow struct {
	Date         string  `json:"date"`         // dd-mm-yyyy
	Symbol       string  `json:"symbol"`       // uppercased, trimmed
	CompanyName  string  `json:"companyName"`  // equity master name, or the symbol itself
	PrevClose    float64 `json:"prevClose"`
	ClosePrice   float64 `json:"closePrice"`
	PctChange    float64 `json:"pctChange"`    // (close-prev)/prev*100, 2dp
	Volume       int64   `json:"volume"`       // TTL_TRD_QNTY
	DeliveredQty int64   `json:"deliveredQty"` // 0 when unreported
	PctDelivery  float64 `json:"pctDelivery"`  // 0..100, 2dp
	TurnoverCr   float64 `json:"turnoverCr"`   // lakhs/100, 2dp
}
