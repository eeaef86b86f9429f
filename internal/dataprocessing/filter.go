package dataprocessing

import (
	"log/slog"
	"time"

	"retailetl/pkg/contracts/domain"
)

// QualityFilter retains only records representing a valid sale. It is the
// authoritative validity gate: everything downstream assumes its predicates
// hold. The evaluation time is captured once so the non-future check is
// consistent across the whole batch.
type QualityFilter struct {
	now    time.Time
	logger *slog.Logger
}

// NewQualityFilter creates a filter evaluating the non-future predicate
// against now.
func NewQualityFilter(now time.Time, logger *slog.Logger) *QualityFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return &QualityFilter{now: now, logger: logger}
}

// Keep reports whether the record passes all validity predicates.
func (f *QualityFilter) Keep(r domain.NormalizedRecord) bool {
	return r.HasQuantity && r.Quantity > 0 &&
		r.HasUnitPrice && r.UnitPrice > 0 &&
		r.HasInvoiceDate && !r.InvoiceDate.After(f.now)
}

// Apply filters the normalized records and promotes survivors to cleaned
// records. Enrichment (country aliases, description backfill, line total)
// happens in a later stage.
func (f *QualityFilter) Apply(records []domain.NormalizedRecord) []domain.CleanedRecord {
	out := make([]domain.CleanedRecord, 0, len(records))
	for _, r := range records {
		if !f.Keep(r) {
			continue
		}
		out = append(out, domain.CleanedRecord{
			Invoice:     r.Invoice,
			StockCode:   r.StockCode,
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			InvoiceDate: r.InvoiceDate,
			CustomerID:  r.CustomerID,
			Country:     r.Country,
			Sheet:       r.Sheet,
		})
	}

	f.logger.Info("filtered valid sales",
		slog.Int("input", len(records)),
		slog.Int("kept", len(out)),
		slog.Int("dropped", len(records)-len(out)))
	return out
}
