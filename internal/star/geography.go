package star

import (
	"log/slog"
	"sort"

	"retailetl/pkg/contracts/domain"
)

// europeanCountries is the fixed list used for region classification. The
// canonical country names produced by the enricher are the lookup keys.
var europeanCountries = map[string]bool{
	"Germany":     true,
	"France":      true,
	"Netherlands": true,
	"Belgium":     true,
	"Ireland":     true,
}

// BuildGeography derives the geography dimension: one row per distinct
// country in the cleaned set, ordered by country name.
func BuildGeography(logger *slog.Logger, records []domain.CleanedRecord) []domain.GeographyRow {
	if logger == nil {
		logger = slog.Default()
	}

	distinct := make(map[string]bool)
	for _, r := range records {
		if r.Country != "" {
			distinct[r.Country] = true
		}
	}

	countries := make([]string, 0, len(distinct))
	for c := range distinct {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	rows := make([]domain.GeographyRow, 0, len(countries))
	for _, c := range countries {
		isUK := c == "United Kingdom"
		region := domain.RegionInternational
		switch {
		case isUK:
			region = domain.RegionUK
		case europeanCountries[c]:
			region = domain.RegionEurope
		}

		row := domain.GeographyRow{
			GeographyKey: GeographyKey(c),
			Country:      c,
			Region:       region,
			IsUK:         isUK,
			IsEU:         region == domain.RegionUK || region == domain.RegionEurope,
		}
		if isUK {
			row.CurrencyCode = "GBP"
			row.TimeZone = "GMT+0"
		}
		rows = append(rows, row)
	}

	logger.Info("built geography dimension", slog.Int("countries", len(rows)))
	return rows
}
