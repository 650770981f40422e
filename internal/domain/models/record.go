package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one normalized row of the daily stock metrics table.
// Nullable numeric fields use decimal.NullDecimal so that "missing"
// stays distinct from zero all the way through the pipeline.
type Record struct {
	Symbol        string
	Date          time.Time
	LTP           decimal.Decimal
	PctChange     decimal.NullDecimal
	Sector        string
	Industry      string
	MarketCap     decimal.NullDecimal
	ROE           decimal.NullDecimal
	ROCE          decimal.NullDecimal
	PERatio       decimal.NullDecimal
	BookValue     decimal.NullDecimal
	DividendYield decimal.NullDecimal
	About         string
}

// Table is the immutable loaded dataset. Derived operations return new
// slices and never mutate the underlying records.
type Table []Record

// Day returns the record's date truncated to midnight UTC.
func (r Record) Day() time.Time {
	y, m, d := r.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthLabel returns the record's month in "January 2006" form.
func (r Record) MonthLabel() string {
	return r.Date.Format("January 2006")
}
