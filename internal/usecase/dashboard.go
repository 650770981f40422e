package usecase

import (
	"context"
	"sort"
	"time"

	"StockDash/internal/domain/models"
	"StockDash/internal/domain/repository"

	"github.com/shopspring/decimal"
)

// Filter narrows the loaded table before aggregation. Nil/empty fields
// are inactive. Date bounds are inclusive and compared at day level.
type Filter struct {
	Date    *time.Time
	From    *time.Time
	To      *time.Time
	Month   string
	Symbol  string
	Sectors []string
}

// Dashboard runs derived-metric queries against the memoized table.
type Dashboard struct {
	source  repository.TableSource
	metrics repository.Metrics
}

func NewDashboard(source repository.TableSource, metrics repository.Metrics) *Dashboard {
	return &Dashboard{source: source, metrics: metrics}
}

// Cards returns the latest-per-symbol snapshots for the filtered view,
// alongside the filtered table they were derived from.
func (d *Dashboard) Cards(ctx context.Context, f Filter) ([]models.Snapshot, models.Table, error) {
	table, err := d.source.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer d.observe("cards", time.Now())

	filtered := Apply(table, f)
	return LatestPerSymbol(filtered), filtered, nil
}

// Highs returns the historical-high subsequence for one symbol.
func (d *Dashboard) Highs(ctx context.Context, symbol string) (models.Table, error) {
	table, err := d.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	defer d.observe("highs", time.Now())
	return HistoricalHighs(table, symbol), nil
}

// Summarize returns headline metrics for the filtered view.
func (d *Dashboard) Summarize(ctx context.Context, f Filter) (models.Summary, error) {
	table, err := d.source.Load(ctx)
	if err != nil {
		return models.Summary{}, err
	}
	defer d.observe("summary", time.Now())
	return Summarize(Apply(table, f)), nil
}

// Sectors returns the sector distribution for the filtered view.
func (d *Dashboard) Sectors(ctx context.Context, f Filter) ([]models.SectorCount, error) {
	table, err := d.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	defer d.observe("sectors", time.Now())
	return SectorCounts(Apply(table, f)), nil
}

// Months lists the months present in the full dataset, chronologically.
func (d *Dashboard) Months(ctx context.Context) ([]string, error) {
	table, err := d.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	defer d.observe("months", time.Now())
	return Months(table), nil
}

func (d *Dashboard) observe(op string, start time.Time) {
	if d.metrics != nil {
		d.metrics.RecordLatency(op, time.Since(start).Seconds())
	}
}

// Apply returns the rows of t matching f. The input is never mutated.
func Apply(t models.Table, f Filter) models.Table {
	out := make(models.Table, 0, len(t))
	for _, r := range t {
		day := r.Day()
		if f.Date != nil && !day.Equal(*f.Date) {
			continue
		}
		if f.From != nil && day.Before(*f.From) {
			continue
		}
		if f.To != nil && day.After(*f.To) {
			continue
		}
		if f.Month != "" && r.MonthLabel() != f.Month {
			continue
		}
		if f.Symbol != "" && r.Symbol != f.Symbol {
			continue
		}
		if len(f.Sectors) > 0 && !containsString(f.Sectors, r.Sector) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// HistoricalHighs returns the rows of the given symbol, date ascending,
// whose price ties or exceeds the running maximum up to that date.
// A plateau of N equal-peak days yields N rows.
func HistoricalHighs(t models.Table, symbol string) models.Table {
	var rows models.Table
	for _, r := range t {
		if r.Symbol == symbol {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	var out models.Table
	var runningMax decimal.Decimal
	for i, r := range rows {
		if i == 0 || r.LTP.GreaterThanOrEqual(runningMax) {
			runningMax = r.LTP
			out = append(out, r)
		}
	}
	return out
}

// LatestPerSymbol groups rows by symbol and keeps the most recent one,
// ties broken by highest percent change (missing sorts last in both
// orderings). Count is the symbol's total row count in the input.
// Result is ordered by count descending, stable.
func LatestPerSymbol(t models.Table) []models.Snapshot {
	if len(t) == 0 {
		return nil
	}

	counts := make(map[string]int)
	latest := make(map[string]models.Record)
	for _, r := range t {
		counts[r.Symbol]++
		cur, ok := latest[r.Symbol]
		if !ok || wins(r, cur) {
			latest[r.Symbol] = r
		}
	}

	symbols := make([]string, 0, len(latest))
	for s := range latest {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	snaps := make([]models.Snapshot, 0, len(symbols))
	for _, s := range symbols {
		snaps = append(snaps, models.Snapshot{Record: latest[s], Count: counts[s]})
	}
	sort.SliceStable(snaps, func(i, j int) bool { return snaps[i].Count > snaps[j].Count })
	return snaps
}

// wins reports whether a should replace b as a symbol's latest record.
func wins(a, b models.Record) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	switch {
	case a.PctChange.Valid && !b.PctChange.Valid:
		return true
	case !a.PctChange.Valid:
		return false
	default:
		return a.PctChange.Decimal.GreaterThan(b.PctChange.Decimal)
	}
}

// DaysSinceHigh returns whole days between a snapshot's date and the
// symbol's most recent running high in t. Zero when the snapshot is
// itself a high.
func DaysSinceHigh(t models.Table, snap models.Snapshot) int {
	highs := HistoricalHighs(t, snap.Symbol)
	if len(highs) == 0 {
		return 0
	}
	last := highs[len(highs)-1].Day()
	return int(snap.Day().Sub(last).Hours() / 24)
}

// Summarize computes headline metrics. The mean change skips missing
// values and is invalid when nothing contributes.
func Summarize(t models.Table) models.Summary {
	symbols := make(map[string]struct{})
	sectors := make(map[string]struct{})
	sum := decimal.Zero
	n := 0
	for _, r := range t {
		symbols[r.Symbol] = struct{}{}
		if r.Sector != "" {
			sectors[r.Sector] = struct{}{}
		}
		if r.PctChange.Valid {
			sum = sum.Add(r.PctChange.Decimal)
			n++
		}
	}
	s := models.Summary{TotalStocks: len(symbols), TotalSectors: len(sectors)}
	if n > 0 {
		avg, _ := sum.Div(decimal.NewFromInt(int64(n))).Float64()
		s.AvgChange = models.NullableAvg{Value: avg, Valid: true}
	}
	return s
}

// SectorCounts returns rows per sector, count descending, ties by name.
func SectorCounts(t models.Table) []models.SectorCount {
	counts := make(map[string]int)
	for _, r := range t {
		if r.Sector != "" {
			counts[r.Sector]++
		}
	}
	out := make([]models.SectorCount, 0, len(counts))
	for s, c := range counts {
		out = append(out, models.SectorCount{Sector: s, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Sector < out[j].Sector
	})
	return out
}

// Months lists distinct "January 2006" labels, chronological.
func Months(t models.Table) []string {
	seen := make(map[time.Time]struct{})
	for _, r := range t {
		m := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		seen[m] = struct{}{}
	}
	keys := make([]time.Time, 0, len(seen))
	for m := range seen {
		keys = append(keys, m)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]string, 0, len(keys))
	for _, m := range keys {
		out = append(out, m.Format("January 2006"))
	}
	return out
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
