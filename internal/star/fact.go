package star

import (
	"log/slog"

	"retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// FactResolver joins cleaned records against the four dimensions, replacing
// natural keys with surrogate keys. It is constructed after all builders
// complete so its lookup maps see the final tables.
type FactResolver struct {
	customers map[string]int64
	products  map[string]int64
	countries map[string]int64
	dates     map[int64]bool
	logger    *slog.Logger
}

// NewFactResolver indexes the dimension tables for natural-key lookup.
func NewFactResolver(logger *slog.Logger, schemaDims domain.StarSchema) *FactResolver {
	if logger == nil {
		logger = slog.Default()
	}

	r := &FactResolver{
		customers: make(map[string]int64, len(schemaDims.Customer)),
		products:  make(map[string]int64, len(schemaDims.Product)),
		countries: make(map[string]int64, len(schemaDims.Geography)),
		dates:     make(map[int64]bool, len(schemaDims.Date)),
		logger:    logger,
	}
	for _, c := range schemaDims.Customer {
		if c.CustomerType == domain.CustomerTypeRegistered {
			r.customers[c.CustomerID] = c.CustomerKey
		}
	}
	for _, p := range schemaDims.Product {
		r.products[p.StockCode] = p.ProductKey
	}
	for _, g := range schemaDims.Geography {
		r.countries[g.Country] = g.GeographyKey
	}
	for _, d := range schemaDims.Date {
		r.dates[d.DateKey] = true
	}
	return r
}

// Resolve builds the fact table. Exactly one fact row is emitted per cleaned
// record. A missing customer ID resolves to the guest key and is never
// counted as unresolved; a failed product, geography, or date lookup keeps
// the row, writes domain.UnresolvedKey, and increments the report.
func (r *FactResolver) Resolve(records []domain.CleanedRecord) ([]domain.FactRow, errors.ReferentialReport) {
	var report errors.ReferentialReport

	facts := make([]domain.FactRow, 0, len(records))
	for _, rec := range records {
		fact := domain.FactRow{
			InvoiceNumber: rec.Invoice,
			Quantity:      rec.Quantity,
			UnitPrice:     rec.UnitPrice,
			TotalValue:    rec.TotalValue,
		}

		if rec.IsGuest() {
			fact.CustomerKey = domain.GuestCustomerKey
		} else if key, ok := r.customers[rec.CustomerID]; ok {
			fact.CustomerKey = key
		} else {
			// A registered ID absent from the dimension cannot happen when
			// dimension and fact derive from the same cleaned set; fall back
			// to the guest key rather than invent an unresolved customer.
			fact.CustomerKey = domain.GuestCustomerKey
		}

		if key, ok := r.products[rec.StockCode]; ok {
			fact.ProductKey = key
		} else {
			fact.ProductKey = domain.UnresolvedKey
			report.UnresolvedProduct++
		}

		if key, ok := r.countries[rec.Country]; ok {
			fact.GeographyKey = key
		} else {
			fact.GeographyKey = domain.UnresolvedKey
			report.UnresolvedGeography++
		}

		day := midnight(rec.InvoiceDate)
		dateKey := DateKey(day.Year(), int(day.Month()), day.Day())
		if r.dates[dateKey] {
			fact.DateKey = dateKey
		} else {
			fact.DateKey = domain.UnresolvedKey
			report.UnresolvedDate++
		}

		facts = append(facts, fact)
	}

	if report.HasUnresolved() {
		r.logger.Warn("unresolved foreign keys in fact table",
			slog.Int("product", report.UnresolvedProduct),
			slog.Int("geography", report.UnresolvedGeography),
			slog.Int("date", report.UnresolvedDate))
	}
	r.logger.Info("built fact table", slog.Int("rows", len(facts)))
	return facts, report
}
