package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"retailetl/internal/config"
	"retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// Column names required in the raw export.
const (
	ColInvoice     = "Invoice"
	ColStockCode   = "StockCode"
	ColDescription = "Description"
	ColQuantity    = "Quantity"
	ColInvoiceDate = "InvoiceDate"
	ColPrice       = "Price"
	ColCustomerID  = "Customer ID"
	ColCountry     = "Country"
)

// RequiredColumns lists every column the normalizer needs. A batch whose
// shape lacks any of them is rejected with a SchemaError before per-row work.
var RequiredColumns = []string{
	ColInvoice, ColStockCode, ColDescription, ColQuantity,
	ColInvoiceDate, ColPrice, ColCustomerID, ColCountry,
}

// currencyStripper removes currency symbols and thousands separators that the
// legacy export sometimes carries in the Price column.
var currencyStripper = strings.NewReplacer(
	"€", "", "$", "", "£", "", "zł", "", "PLN", "",
	" ", "", " ", "",
)

// Timestamp layouts tried by the tolerant date parser. The day-first set is
// preferred when CleaningConfig.DayFirst is enabled.
var (
	monthFirstLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"1/2/2006 15:04",
		"1/2/2006 15:04:05",
		"1/2/2006",
		"2006/01/02 15:04",
	}
	dayFirstLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2/1/2006 15:04",
		"2/1/2006 15:04:05",
		"2/1/2006",
		"02.01.2006 15:04",
		"02.01.2006",
	}
)

// Normalizer coerces raw string fields into typed values. Per-field parse
// failures are recorded as missing values; only an invalid batch shape is an
// error.
type Normalizer struct {
	cfg    config.CleaningConfig
	logger *slog.Logger
}

// NewNormalizer creates a normalizer with the given cleaning options.
func NewNormalizer(cfg config.CleaningConfig, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{cfg: cfg, logger: logger}
}

// Normalize validates the batch shape against RequiredColumns and coerces
// every record. The column list describes the shape of the whole batch, so
// the schema check runs exactly once.
func (n *Normalizer) Normalize(columns []string, records []domain.RawRecord) ([]domain.NormalizedRecord, error) {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaError(missing)
	}

	out := make([]domain.NormalizedRecord, 0, len(records))
	var quantityMisses, priceMisses, dateMisses int
	for _, raw := range records {
		rec := domain.NormalizedRecord{
			Invoice:     trimmed(raw, ColInvoice),
			StockCode:   trimmed(raw, ColStockCode),
			Description: trimmed(raw, ColDescription),
			Country:     trimmed(raw, ColCountry),
			CustomerID:  normalizeCustomerID(trimmed(raw, ColCustomerID)),
			Sheet:       raw.Sheet,
		}

		if qty, ok := n.parseQuantity(trimmed(raw, ColQuantity)); ok {
			rec.Quantity = qty
			rec.HasQuantity = true
		} else {
			quantityMisses++
		}

		if price, ok := n.parsePrice(trimmed(raw, ColPrice)); ok {
			rec.UnitPrice = price
			rec.HasUnitPrice = true
		} else {
			priceMisses++
		}

		if ts, ok := n.parseTimestamp(trimmed(raw, ColInvoiceDate)); ok {
			rec.InvoiceDate = ts
			rec.HasInvoiceDate = true
		} else {
			dateMisses++
		}

		out = append(out, rec)
	}

	if quantityMisses+priceMisses+dateMisses > 0 {
		n.logger.Warn("field coercion produced missing values",
			slog.Int("quantity", quantityMisses),
			slog.Int("price", priceMisses),
			slog.Int("invoice_date", dateMisses))
	}

	return out, nil
}

// parseQuantity parses an integral quantity. Fractional values are treated
// as missing rather than rounded.
func (n *Normalizer) parseQuantity(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}

// parsePrice parses a unit price. With StripCurrency enabled it first removes
// currency symbols and thousands separators and converts a decimal comma to a
// point. Negative prices are treated as missing.
func (n *Normalizer) parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if n.cfg.StripCurrency {
		s = currencyStripper.Replace(s)
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f < 0 {
		return 0, false
	}
	return f, true
}

// parseTimestamp tries the configured layout set in order.
func (n *Normalizer) parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	layouts := monthFirstLayouts
	if n.cfg.DayFirst {
		layouts = dayFirstLayouts
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// trimmed returns the named field with surrounding whitespace removed.
func trimmed(r domain.RawRecord, name string) string {
	v, _ := r.Get(name)
	return strings.TrimSpace(v)
}

// normalizeCustomerID maps the exporter's textual null markers to missing.
func normalizeCustomerID(s string) string {
	switch s {
	case "", "nan", "NaN", "None":
		return ""
	}
	return s
}
