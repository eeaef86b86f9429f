package dataprocessing

import (
	"log/slog"

	"retailetl/pkg/contracts/domain"
)

// UnknownProduct is the sentinel description for rows whose source cell was
// blank or a textual null marker.
const UnknownProduct = "UNKNOWN PRODUCT"

// countryAliases maps the alternative spellings seen in the export to their
// canonical country names. Unmapped values pass through unchanged.
var countryAliases = map[string]string{
	"UK":            "United Kingdom",
	"England":       "United Kingdom",
	"Great Britain": "United Kingdom",
	"EIRE":          "Ireland",
	"USA":           "United States",
	"U.S.A.":        "United States",
}

// CanonicalCountry returns the standardized name for a country value.
func CanonicalCountry(country string) string {
	if canonical, ok := countryAliases[country]; ok {
		return canonical
	}
	return country
}

// Enrich standardizes categorical text and computes the derived line total
// for each record. It returns a new slice; the input records are not
// modified.
func Enrich(logger *slog.Logger, records []domain.CleanedRecord) []domain.CleanedRecord {
	if logger == nil {
		logger = slog.Default()
	}

	out := make([]domain.CleanedRecord, len(records))
	var totalRevenue float64
	for i, r := range records {
		r.Country = CanonicalCountry(r.Country)
		if isPlaceholderDescription(r.Description) {
			r.Description = UnknownProduct
		}
		r.TotalValue = float64(r.Quantity) * r.UnitPrice
		totalRevenue += r.TotalValue
		out[i] = r
	}

	logger.Info("enriched records",
		slog.Int("count", len(out)),
		slog.Float64("total_revenue", totalRevenue))
	return out
}

// isPlaceholderDescription reports whether the description is one of the
// textual null markers the exporter produces.
func isPlaceholderDescription(s string) bool {
	switch s {
	case "", "nan", "None":
		return true
	}
	return false
}
