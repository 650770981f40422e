package api

import (
	"fmt"
	"strings"

	models "StockDash/internal/domain/models"
	"StockDash/internal/format"
	"StockDash/internal/loader"
	"StockDash/internal/usecase"
	xhttp "StockDash/pkg/http"
	xlogger "StockDash/pkg/logger"
	"StockDash/pkg/util"

	"github.com/labstack/echo/v4"
)

const (
	cardDateLayout = "02 January 2006"
	screenerBase   = "https://www.screener.in/company/"
	aboutLimit     = 300
)

// DashboardEchoHandler implements the Echo-based dashboard API.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	dash   *usecase.Dashboard
}

func NewDashboardEchoHandler(logger *xlogger.Logger, dash *usecase.Dashboard) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, dash: dash}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stocks", h.Stocks)
	g.GET("/highs", h.Highs)
	g.GET("/summary", h.Summary)
	g.GET("/sectors", h.Sectors)
	g.GET("/months", h.Months)
}

// Stocks returns the latest-per-symbol cards for the requested filter.
func (h *DashboardEchoHandler) Stocks(c echo.Context) error {
	req := &models.FilterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	f, aerr := parseFilter(req)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	snaps, filtered, err := h.dash.Cards(c.Request().Context(), f)
	if err != nil {
		return h.dataError(c, err)
	}

	cards := make([]models.StockCard, 0, len(snaps))
	for _, snap := range snaps {
		cards = append(cards, buildCard(filtered, snap))
	}
	return xhttp.ListResponse(c, cards, int64(len(cards)))
}

// Highs returns the historical-high timeline for one symbol. An empty
// timeline is a valid result, not an error.
func (h *DashboardEchoHandler) Highs(c echo.Context) error {
	req := &models.HighsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	highs, err := h.dash.Highs(c.Request().Context(), symbol)
	if err != nil {
		return h.dataError(c, err)
	}

	res := models.HighsResponse{Symbol: symbol, Timeline: []models.HighPoint{}}
	if len(highs) > 0 {
		// Running-max filter means the last row holds the all-time high.
		last := highs[len(highs)-1]
		res.AllTimeHigh = format.CurrencyValue(last.LTP)
		res.TotalHighs = len(highs)
		res.LatestHighDate = last.Date.Format(cardDateLayout)
		for i := len(highs) - 1; i >= 0; i-- {
			r := highs[i]
			res.Timeline = append(res.Timeline, models.HighPoint{
				Date:   r.Date.Format(cardDateLayout),
				LTP:    format.CurrencyValue(r.LTP),
				Change: format.Percent(r.PctChange),
			})
		}
	}
	return xhttp.SuccessResponse(c, res)
}

// Summary returns headline metrics for the requested filter.
func (h *DashboardEchoHandler) Summary(c echo.Context) error {
	req := &models.FilterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	f, aerr := parseFilter(req)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	s, err := h.dash.Summarize(c.Request().Context(), f)
	if err != nil {
		return h.dataError(c, err)
	}

	res := models.SummaryResponse{
		TotalStocks:  s.TotalStocks,
		TotalSectors: s.TotalSectors,
		AvgChange:    format.NotAvailable,
	}
	if s.AvgChange.Valid {
		res.AvgChange = formatAvg(s.AvgChange.Value)
	}
	return xhttp.SuccessResponse(c, res)
}

// Sectors returns the sector distribution for the requested filter.
func (h *DashboardEchoHandler) Sectors(c echo.Context) error {
	req := &models.FilterRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	f, aerr := parseFilter(req)
	if aerr != nil {
		return xhttp.AppErrorResponse(c, aerr)
	}

	counts, err := h.dash.Sectors(c.Request().Context(), f)
	if err != nil {
		return h.dataError(c, err)
	}
	rows := make([]models.SectorCountResponse, 0, len(counts))
	for _, sc := range counts {
		rows = append(rows, models.SectorCountResponse{Sector: sc.Sector, Count: sc.Count})
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Months lists the months present in the dataset.
func (h *DashboardEchoHandler) Months(c echo.Context) error {
	months, err := h.dash.Months(c.Request().Context())
	if err != nil {
		return h.dataError(c, err)
	}
	return xhttp.SuccessResponse(c, models.MonthsResponse{Months: months})
}

func (h *DashboardEchoHandler) dataError(c echo.Context, err error) error {
	h.logger.Error("dashboard query error", xlogger.Error(err))
	if loader.IsLoadError(err) {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("no usable data").WithError(err))
	}
	return xhttp.AppErrorResponse(c, err)
}

func parseFilter(req *models.FilterRequest) (usecase.Filter, *xhttp.AppError) {
	var f usecase.Filter

	if req.Date != "" {
		d, ok := util.ParseDate(req.Date)
		if !ok {
			return f, xhttp.BadRequestErrorf("invalid date %q", req.Date)
		}
		f.Date = &d
	}
	if req.From != "" {
		d, ok := util.ParseDate(req.From)
		if !ok {
			return f, xhttp.BadRequestErrorf("invalid from date %q", req.From)
		}
		f.From = &d
	}
	if req.To != "" {
		d, ok := util.ParseDate(req.To)
		if !ok {
			return f, xhttp.BadRequestErrorf("invalid to date %q", req.To)
		}
		f.To = &d
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, xhttp.BadRequestError("end date must be after start date")
	}
	if req.Month != "" {
		m, ok := util.ParseMonth(req.Month)
		if !ok {
			return f, xhttp.BadRequestErrorf("invalid month %q", req.Month)
		}
		f.Month = m.Format("January 2006")
	}
	f.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Sectors != "" {
		for _, s := range strings.Split(req.Sectors, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Sectors = append(f.Sectors, s)
			}
		}
	}
	return f, nil
}

func buildCard(filtered models.Table, snap models.Snapshot) models.StockCard {
	return models.StockCard{
		Symbol:        snap.Symbol,
		Sector:        snap.Sector,
		Industry:      snap.Industry,
		Date:          snap.Date.Format(cardDateLayout),
		LTP:           format.CurrencyValue(snap.LTP),
		Change:        format.Percent(snap.PctChange),
		MarketCap:     format.Currency(snap.MarketCap),
		ROE:           format.RatioPercent(snap.ROE),
		ROCE:          format.RatioPercent(snap.ROCE),
		PERatio:       format.Ratio(snap.PERatio),
		BookValue:     format.Ratio(snap.BookValue),
		DividendYield: format.RatioPercent(snap.DividendYield),
		About:         truncateAbout(snap.About),
		Count:         snap.Count,
		DaysSinceHigh: usecase.DaysSinceHigh(filtered, snap),
		ScreenerURL:   screenerBase + snap.Symbol + "/",
	}
}

func formatAvg(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

func truncateAbout(s string) string {
	runes := []rune(s)
	if len(runes) <= aboutLimit {
		return s
	}
	return string(runes[:aboutLimit-3]) + "..."
}
