package dataprocessing

import (
	"time"

	"retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// Quality gate check names.
const (
	CheckPositiveQuantities = "positive_quantities"
	CheckPositivePrices     = "positive_prices"
	CheckNonFutureDates     = "non_future_dates"
	CheckNonMissingInvoice  = "non_missing_invoice"
	CheckNonMissingStock    = "non_missing_stockcode"
	CheckPositiveTotalValue = "positive_total_value"
)

// CheckCleaned re-evaluates the cleaning invariants over the final cleaned
// set and returns one violation per failed check with the number of
// offending rows. It is a pure function: it never removes rows, logs, or
// aborts. The quality filter is the real gate; this recheck exists so
// operators can see when an invariant slipped through.
func CheckCleaned(records []domain.CleanedRecord, now time.Time) []errors.Violation {
	counts := map[string]int{}
	for _, r := range records {
		if r.Quantity <= 0 {
			counts[CheckPositiveQuantities]++
		}
		if r.UnitPrice <= 0 {
			counts[CheckPositivePrices]++
		}
		if r.InvoiceDate.After(now) {
			counts[CheckNonFutureDates]++
		}
		if r.Invoice == "" {
			counts[CheckNonMissingInvoice]++
		}
		if r.StockCode == "" {
			counts[CheckNonMissingStock]++
		}
		if r.TotalValue <= 0 {
			counts[CheckPositiveTotalValue]++
		}
	}

	// Fixed order keeps the report deterministic for tests and logs.
	order := []string{
		CheckPositiveQuantities,
		CheckPositivePrices,
		CheckNonFutureDates,
		CheckNonMissingInvoice,
		CheckNonMissingStock,
		CheckPositiveTotalValue,
	}
	var violations []errors.Violation
	for _, check := range order {
		if counts[check] > 0 {
			violations = append(violations, errors.Violation{Check: check, Count: counts[check]})
		}
	}
	return violations
}
