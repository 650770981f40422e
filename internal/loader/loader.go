package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"StockDash/internal/domain/models"
	"StockDash/pkg/util"

	"github.com/shopspring/decimal"
)

// Required columns of the source CSV, by exact header name.
const (
	ColDate          = "Today's Date"
	ColSymbol        = "Symbol"
	ColLTP           = "LTP"
	ColPctChange     = "%chng"
	ColSector        = "Sector"
	ColIndustry      = "Industry"
	ColMarketCap     = "Market Cap"
	ColROE           = "ROE"
	ColROCE          = "ROCE"
	ColPERatio       = "P/E Ratio"
	ColBookValue     = "Book Value"
	ColDividendYield = "Dividend Yield"
	ColAbout         = "About"
)

var requiredColumns = []string{
	ColDate, ColSymbol, ColLTP, ColPctChange, ColSector, ColIndustry,
	ColMarketCap, ColROE, ColROCE, ColPERatio, ColBookValue,
	ColDividendYield, ColAbout,
}

// DataLoadError marks a whole-file load failure: unreadable file,
// malformed CSV, missing required column, or an unparseable date or
// price. Field-level failures on the lenient columns never produce one.
type DataLoadError struct {
	File string
	Err  error
}

func (e *DataLoadError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("load %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("load: %v", e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is (or wraps) a DataLoadError.
func IsLoadError(err error) bool {
	var e *DataLoadError
	return errors.As(err, &e)
}

const rupee = "₹"

// numericSubstring matches the leading numeric substring of a cleaned
// market-cap value, integer or decimal.
var numericSubstring = regexp.MustCompile(`\d+(?:\.\d+)?`)

// LoadFile reads and normalizes the metrics CSV at path. On failure it
// returns an empty table and a DataLoadError carrying the cause.
func LoadFile(path string) (models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{File: path, Err: err}
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, &DataLoadError{File: path, Err: err}
	}
	return table, nil
}

// Read parses and normalizes a metrics table from r.
func Read(r io.Reader) (models.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var table models.Table
	line := 1
	for {
		raw, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		rec, err := normalizeRow(raw, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		table = append(table, rec)
	}
	return table, nil
}

func normalizeRow(raw []string, idx map[string]int) (models.Record, error) {
	field := func(col string) string { return raw[idx[col]] }

	date, ok := util.ParseDate(field(ColDate))
	if !ok {
		return models.Record{}, fmt.Errorf("unparseable date %q", field(ColDate))
	}

	symbol := strings.ToUpper(strings.TrimSpace(field(ColSymbol)))
	if symbol == "" {
		return models.Record{}, fmt.Errorf("empty symbol")
	}

	ltp, err := parsePrice(field(ColLTP))
	if err != nil {
		return models.Record{}, fmt.Errorf("unparseable LTP %q", field(ColLTP))
	}

	return models.Record{
		Symbol:        symbol,
		Date:          date,
		LTP:           ltp,
		PctChange:     parsePercent(field(ColPctChange)),
		Sector:        strings.TrimSpace(field(ColSector)),
		Industry:      strings.TrimSpace(field(ColIndustry)),
		MarketCap:     parseMarketCap(field(ColMarketCap)),
		ROE:           parseRatio(field(ColROE)),
		ROCE:          parseRatio(field(ColROCE)),
		PERatio:       parseRatio(field(ColPERatio)),
		BookValue:     parseRatio(field(ColBookValue)),
		DividendYield: parseRatio(field(ColDividendYield)),
		About:         strings.TrimSpace(field(ColAbout)),
	}, nil
}

// parsePrice parses the LTP column. The price series is the core data,
// so failure here is fatal for the whole load.
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, rupee, "")
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(strings.TrimSpace(s))
}

// parsePercent strips a trailing %, trims, and parses. Unparseable
// values become missing, never zero.
func parsePercent(s string) decimal.NullDecimal {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return parseNullable(s)
}

// parseRatio strips % and the currency glyph before parsing.
func parseRatio(s string) decimal.NullDecimal {
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, rupee, "")
	return parseNullable(strings.TrimSpace(s))
}

// parseMarketCap strips the currency glyph and thousands separators,
// then extracts the leading numeric substring. "₹1,234.5Cr" → 1234.5.
func parseMarketCap(s string) decimal.NullDecimal {
	s = strings.ReplaceAll(s, rupee, "")
	s = strings.ReplaceAll(s, ",", "")
	num := numericSubstring.FindString(s)
	if num == "" {
		return decimal.NullDecimal{}
	}
	return parseNullable(num)
}

func parseNullable(s string) decimal.NullDecimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
