package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

// FilterRequest selects the view window: a specific date, an inclusive
// date range, or a month, optionally narrowed by symbol and sectors.
type FilterRequest struct {
	Date    string `query:"date" json:"date" validate:"omitempty"`
	From    string `query:"from" json:"from" validate:"omitempty"`
	To      string `query:"to" json:"to" validate:"omitempty"`
	Month   string `query:"month" json:"month" validate:"omitempty"`
	Symbol  string `query:"symbol" json:"symbol" validate:"omitempty,max=32"`
	Sectors string `query:"sectors" json:"sectors" validate:"omitempty"`
}

type HighsRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,max=32"`
}

// StockCard is the JSON card view for one symbol, all money and ratio
// fields pre-formatted for display.
type StockCard struct {
	Symbol        string `json:"symbol"`
	Sector        string `json:"sector"`
	Industry      string `json:"industry"`
	Date          string `json:"date"`
	LTP           string `json:"ltp"`
	Change        string `json:"change"`
	MarketCap     string `json:"market_cap"`
	ROE           string `json:"roe"`
	ROCE          string `json:"roce"`
	PERatio       string `json:"pe_ratio"`
	BookValue     string `json:"book_value"`
	DividendYield string `json:"dividend_yield"`
	About         string `json:"about"`
	Count         int    `json:"count"`
	DaysSinceHigh int    `json:"days_since_high"`
	ScreenerURL   string `json:"screener_url"`
}

// HighPoint is one row of a symbol's high-points timeline.
type HighPoint struct {
	Date   string `json:"date"`
	LTP    string `json:"ltp"`
	Change string `json:"change"`
}

type HighsResponse struct {
	Symbol         string      `json:"symbol"`
	AllTimeHigh    string      `json:"all_time_high"`
	TotalHighs     int         `json:"total_highs"`
	LatestHighDate string      `json:"latest_high_date"`
	Timeline       []HighPoint `json:"timeline"`
}

type SummaryResponse struct {
	TotalStocks  int    `json:"total_stocks"`
	TotalSectors int    `json:"total_sectors"`
	AvgChange    string `json:"avg_change"`
}

type SectorCountResponse struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

type MonthsResponse struct {
	Months []string `json:"months"`
}
