package usecase

import (
	"testing"
	"time"

	"StockDash/internal/domain/models"

	"github.com/shopspring/decimal"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func row(symbol string, d int, price string) models.Record {
	return models.Record{
		Symbol: symbol,
		Date:   day(d),
		LTP:    decimal.RequireFromString(price),
		Sector: "IT",
	}
}

func pct(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestHistoricalHighsCumulativeMax(t *testing.T) {
	// Prices 10, 12, 12, 9, 15 over five consecutive days: days 1, 2, 3
	// and 5 tie or exceed the running max. The 12/12 plateau keeps both.
	table := models.Table{
		row("TCS", 1, "10"),
		row("TCS", 2, "12"),
		row("TCS", 3, "12"),
		row("TCS", 4, "9"),
		row("TCS", 5, "15"),
	}

	highs := HistoricalHighs(table, "TCS")
	if len(highs) != 4 {
		t.Fatalf("expected 4 high rows, got %d", len(highs))
	}
	wantDays := []int{1, 2, 3, 5}
	for i, h := range highs {
		if h.Date.Day() != wantDays[i] {
			t.Errorf("high %d: expected day %d, got %d", i, wantDays[i], h.Date.Day())
		}
	}
	for i := 1; i < len(highs); i++ {
		if highs[i].LTP.LessThan(highs[i-1].LTP) {
			t.Errorf("price sequence decreased at %d: %s < %s", i, highs[i].LTP, highs[i-1].LTP)
		}
	}
}

func TestHistoricalHighsSortsByDate(t *testing.T) {
	table := models.Table{
		row("TCS", 5, "15"),
		row("TCS", 1, "10"),
		row("TCS", 3, "12"),
	}
	highs := HistoricalHighs(table, "TCS")
	if len(highs) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(highs))
	}
	if highs[0].Date.Day() != 1 || highs[2].Date.Day() != 5 {
		t.Fatalf("highs not date ascending: %v", highs)
	}
}

func TestHistoricalHighsUnknownSymbol(t *testing.T) {
	table := models.Table{row("TCS", 1, "10")}
	if highs := HistoricalHighs(table, "INFY"); len(highs) != 0 {
		t.Fatalf("expected empty, got %d rows", len(highs))
	}
}

func TestLatestPerSymbolEmptyTable(t *testing.T) {
	if snaps := LatestPerSymbol(nil); len(snaps) != 0 {
		t.Fatalf("expected empty result, got %d", len(snaps))
	}
}

func TestLatestPerSymbolPicksLatestDate(t *testing.T) {
	table := models.Table{
		row("TCS", 1, "10"),
		row("TCS", 3, "11"),
		row("TCS", 2, "12"),
		row("INFY", 2, "20"),
	}
	snaps := LatestPerSymbol(table)
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
	// TCS has more rows, so it sorts first.
	if snaps[0].Symbol != "TCS" || snaps[0].Count != 3 {
		t.Fatalf("unexpected first snapshot %s count=%d", snaps[0].Symbol, snaps[0].Count)
	}
	if snaps[0].Date.Day() != 3 {
		t.Errorf("expected latest date day 3, got %d", snaps[0].Date.Day())
	}
	if snaps[1].Symbol != "INFY" || snaps[1].Count != 1 {
		t.Errorf("unexpected second snapshot %s count=%d", snaps[1].Symbol, snaps[1].Count)
	}
}

func TestLatestPerSymbolTieBrokenByPctChange(t *testing.T) {
	a := row("TCS", 1, "10")
	a.PctChange = pct("1.5")
	b := row("TCS", 1, "11")
	b.PctChange = pct("3.0")
	c := row("TCS", 1, "12") // missing %chng sorts last

	snaps := LatestPerSymbol(models.Table{a, b, c})
	if len(snaps) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snaps))
	}
	if !snaps[0].LTP.Equal(decimal.RequireFromString("11")) {
		t.Fatalf("expected highest-%%chng row to win, got LTP %s", snaps[0].LTP)
	}
	if snaps[0].Count != 3 {
		t.Fatalf("expected count 3, got %d", snaps[0].Count)
	}
}

func TestLatestPerSymbolCountInvariantUnderReorder(t *testing.T) {
	table := models.Table{
		row("TCS", 1, "10"),
		row("INFY", 1, "20"),
		row("TCS", 2, "11"),
		row("TCS", 3, "12"),
		row("INFY", 3, "21"),
	}
	reversed := make(models.Table, len(table))
	for i, r := range table {
		reversed[len(table)-1-i] = r
	}

	a := LatestPerSymbol(table)
	b := LatestPerSymbol(reversed)
	if len(a) != len(b) {
		t.Fatalf("length mismatch %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Symbol != b[i].Symbol || a[i].Count != b[i].Count {
			t.Errorf("snapshot %d differs: %s/%d vs %s/%d",
				i, a[i].Symbol, a[i].Count, b[i].Symbol, b[i].Count)
		}
	}
}

func TestApplyDateFilter(t *testing.T) {
	table := models.Table{row("TCS", 1, "10"), row("TCS", 2, "11")}
	d := day(2)
	got := Apply(table, Filter{Date: &d})
	if len(got) != 1 || got[0].Date.Day() != 2 {
		t.Fatalf("unexpected filter result %v", got)
	}
	// input untouched
	if len(table) != 2 {
		t.Fatalf("input mutated")
	}
}

func TestApplyRangeFilterInclusive(t *testing.T) {
	table := models.Table{row("TCS", 1, "10"), row("TCS", 2, "11"), row("TCS", 3, "12"), row("TCS", 4, "13")}
	from, to := day(2), day(3)
	got := Apply(table, Filter{From: &from, To: &to})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Date.Day() != 2 || got[1].Date.Day() != 3 {
		t.Fatalf("range bounds not inclusive: %v", got)
	}
}

func TestApplyMonthAndSectorFilter(t *testing.T) {
	a := row("TCS", 1, "10")
	b := row("HDFC", 2, "20")
	b.Sector = "Banking"
	c := models.Record{Symbol: "TCS", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), LTP: decimal.RequireFromString("11"), Sector: "IT"}
	table := models.Table{a, b, c}

	got := Apply(table, Filter{Month: "March 2024"})
	if len(got) != 2 {
		t.Fatalf("month filter: expected 2 rows, got %d", len(got))
	}
	got = Apply(table, Filter{Sectors: []string{"Banking"}})
	if len(got) != 1 || got[0].Symbol != "HDFC" {
		t.Fatalf("sector filter: unexpected %v", got)
	}
}

func TestSummarizeSkipsMissingChange(t *testing.T) {
	a := row("TCS", 1, "10")
	a.PctChange = pct("2.0")
	b := row("INFY", 1, "20")
	b.PctChange = pct("4.0")
	c := row("HDFC", 1, "30") // missing %chng

	s := Summarize(models.Table{a, b, c})
	if s.TotalStocks != 3 {
		t.Errorf("expected 3 stocks, got %d", s.TotalStocks)
	}
	if !s.AvgChange.Valid || s.AvgChange.Value != 3.0 {
		t.Errorf("expected avg 3.0, got %v", s.AvgChange)
	}

	s = Summarize(models.Table{c})
	if s.AvgChange.Valid {
		t.Errorf("expected invalid avg with no contributing rows")
	}
}

func TestSectorCountsOrdered(t *testing.T) {
	a := row("TCS", 1, "10")
	b := row("INFY", 1, "20")
	c := row("HDFC", 1, "30")
	c.Sector = "Banking"

	counts := SectorCounts(models.Table{a, b, c})
	if len(counts) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(counts))
	}
	if counts[0].Sector != "IT" || counts[0].Count != 2 {
		t.Fatalf("unexpected first sector %v", counts[0])
	}
}

func TestMonthsChronological(t *testing.T) {
	table := models.Table{
		models.Record{Symbol: "A", Date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), LTP: decimal.New(1, 0)},
		models.Record{Symbol: "A", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), LTP: decimal.New(1, 0)},
		models.Record{Symbol: "A", Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), LTP: decimal.New(1, 0)},
	}
	months := Months(table)
	want := []string{"January 2024", "April 2024"}
	if len(months) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(months))
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("month %d: expected %s, got %s", i, want[i], months[i])
		}
	}
}

func TestDaysSinceHigh(t *testing.T) {
	table := models.Table{
		row("TCS", 1, "10"),
		row("TCS", 2, "12"),
		row("TCS", 5, "9"),
	}
	snaps := LatestPerSymbol(table)
	if got := DaysSinceHigh(table, snaps[0]); got != 3 {
		t.Errorf("expected 3 days since high, got %d", got)
	}

	atHigh := models.Table{row("TCS", 1, "10"), row("TCS", 4, "15")}
	snaps = LatestPerSymbol(atHigh)
	if got := DaysSinceHigh(atHigh, snaps[0]); got != 0 {
		t.Errorf("expected 0 when latest record is a high, got %d", got)
	}
}
