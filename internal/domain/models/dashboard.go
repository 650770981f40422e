package models

// Snapshot is the latest record for a symbol within a filtered table,
// annotated with how many rows contributed to that symbol's appearance.
type Snapshot struct {
	Record
	Count int
}

// Summary holds headline metrics for a filtered table.
// AvgChange is unset when no row carries a percent change.
type Summary struct {
	TotalStocks  int
	TotalSectors int
	AvgChange    NullableAvg
}

// NullableAvg is a mean that may be undefined (no contributing values).
type NullableAvg struct {
	Value float64
	Valid bool
}

// SectorCount is one bar of the sector distribution.
type SectorCount struct {
	Sector string
	Count  int
}
