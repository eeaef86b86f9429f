package star

import (
	"log/slog"
	"sort"
	"time"

	"retailetl/pkg/contracts/domain"
)

// customerAccumulator collects per-customer aggregates during the single
// pass over the cleaned set.
type customerAccumulator struct {
	country    string // country of first occurrence in input order
	first      time.Time
	last       time.Time
	invoices   map[string]bool
	totalSpent float64
}

// BuildCustomer derives the customer dimension: one row per registered
// customer ID plus, when any record lacks a customer ID, a single synthetic
// guest row under domain.GuestCustomerKey aggregating all of them.
func BuildCustomer(logger *slog.Logger, records []domain.CleanedRecord) []domain.CustomerRow {
	if logger == nil {
		logger = slog.Default()
	}

	registered := make(map[string]*customerAccumulator)
	var guest *customerAccumulator

	for _, r := range records {
		if r.IsGuest() {
			if guest == nil {
				guest = newCustomerAccumulator(r)
			} else {
				guest.add(r)
			}
			continue
		}
		if acc, ok := registered[r.CustomerID]; ok {
			acc.add(r)
		} else {
			registered[r.CustomerID] = newCustomerAccumulator(r)
		}
	}

	ids := make([]string, 0, len(registered))
	for id := range registered {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]domain.CustomerRow, 0, len(ids)+1)
	for _, id := range ids {
		acc := registered[id]
		rows = append(rows, domain.CustomerRow{
			CustomerKey:       CustomerKey(id),
			CustomerID:        id,
			CustomerType:      domain.CustomerTypeRegistered,
			Country:           acc.country,
			FirstPurchase:     acc.first,
			LastPurchase:      acc.last,
			TotalTransactions: int64(len(acc.invoices)),
			TotalSpent:        acc.totalSpent,
			IsUK:              acc.country == "United Kingdom",
		})
	}

	if guest != nil {
		rows = append(rows, domain.CustomerRow{
			CustomerKey:       domain.GuestCustomerKey,
			CustomerType:      domain.CustomerTypeGuest,
			Country:           "Mixed",
			FirstPurchase:     guest.first,
			LastPurchase:      guest.last,
			TotalTransactions: int64(len(guest.invoices)),
			TotalSpent:        guest.totalSpent,
		})
	}

	logger.Info("built customer dimension",
		slog.Int("registered", len(ids)),
		slog.Bool("guest_row", guest != nil))
	return rows
}

func newCustomerAccumulator(r domain.CleanedRecord) *customerAccumulator {
	acc := &customerAccumulator{
		country:  r.Country,
		first:    r.InvoiceDate,
		last:     r.InvoiceDate,
		invoices: map[string]bool{r.Invoice: true},
	}
	acc.totalSpent = r.TotalValue
	return acc
}

func (a *customerAccumulator) add(r domain.CleanedRecord) {
	if r.InvoiceDate.Before(a.first) {
		a.first = r.InvoiceDate
	}
	if r.InvoiceDate.After(a.last) {
		a.last = r.InvoiceDate
	}
	a.invoices[r.Invoice] = true
	a.totalSpent += r.TotalValue
}
