package dataprocessing

import (
	"log/slog"

	"retailetl/pkg/contracts/domain"
)

// transactionKey is the composite natural key used for deduplication.
// Missing values participate through their Has* flags so that two rows with
// an unparseable quantity still compare equal only when both are missing.
type transactionKey struct {
	invoice   string
	stockCode string
	quantity  int64
	hasQty    bool
	unixNano  int64
	hasDate   bool
	price     float64
	hasPrice  bool
}

func keyOf(r domain.NormalizedRecord) transactionKey {
	k := transactionKey{
		invoice:   r.Invoice,
		stockCode: r.StockCode,
		quantity:  r.Quantity,
		hasQty:    r.HasQuantity,
		price:     r.UnitPrice,
		hasPrice:  r.HasUnitPrice,
		hasDate:   r.HasInvoiceDate,
	}
	if r.HasInvoiceDate {
		k.unixNano = r.InvoiceDate.UnixNano()
	}
	return k
}

// Deduplicate collapses records sharing the composite transaction key
// (invoice, stock code, quantity, invoice date, price), keeping the first
// occurrence. Output order is a stable subsequence of input order.
func Deduplicate(logger *slog.Logger, records []domain.NormalizedRecord) []domain.NormalizedRecord {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[transactionKey]struct{}, len(records))
	out := make([]domain.NormalizedRecord, 0, len(records))
	for _, r := range records {
		k := keyOf(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}

	if removed := len(records) - len(out); removed > 0 {
		logger.Info("removed duplicate records",
			slog.Int("removed", removed),
			slog.Int("remaining", len(out)))
	}
	return out
}
