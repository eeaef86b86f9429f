package star

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailetl/pkg/contracts/domain"
)

func buildDims(t *testing.T, records []domain.CleanedRecord, bufferMonths int) domain.StarSchema {
	t.Helper()
	return domain.StarSchema{
		Geography: BuildGeography(nil, records),
		Customer:  BuildCustomer(nil, records),
		Product:   BuildProduct(nil, records),
		Date:      BuildDate(nil, records, bufferMonths),
	}
}

func TestFactResolver_Resolve(t *testing.T) {
	dec := time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	records := []domain.CleanedRecord{
		{
			Invoice: "536365", StockCode: "71053", CustomerID: "17850",
			Country: "United Kingdom", Quantity: 6, UnitPrice: 3.39,
			TotalValue: 20.34, InvoiceDate: dec,
		},
		{
			Invoice: "536366", StockCode: "22752", CustomerID: "",
			Country: "France", Quantity: 2, UnitPrice: 7.65,
			TotalValue: 15.30, InvoiceDate: dec.AddDate(0, 1, 3),
		},
	}

	resolver := NewFactResolver(nil, buildDims(t, records, 1))
	facts, report := resolver.Resolve(records)

	require.Len(t, facts, len(records), "one fact row per cleaned record")
	assert.False(t, report.HasUnresolved())

	first := facts[0]
	assert.Equal(t, "536365", first.InvoiceNumber)
	assert.Equal(t, CustomerKey("17850"), first.CustomerKey)
	assert.Equal(t, ProductKey("71053"), first.ProductKey)
	assert.Equal(t, GeographyKey("United Kingdom"), first.GeographyKey)
	assert.Equal(t, int64(20101201), first.DateKey)
	assert.Equal(t, int64(6), first.Quantity)
	assert.InDelta(t, 20.34, first.TotalValue, 1e-9)

	guest := facts[1]
	assert.Equal(t, domain.GuestCustomerKey, guest.CustomerKey)
	assert.Equal(t, int64(20110104), guest.DateKey)
}

func TestFactResolver_UnresolvedKeysAreSentinels(t *testing.T) {
	dec := time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.CleanedRecord{
		{
			Invoice: "536365", StockCode: "71053", CustomerID: "17850",
			Country: "United Kingdom", Quantity: 1, UnitPrice: 1,
			TotalValue: 1, InvoiceDate: dec,
		},
	}

	// Empty dimensions force every non-customer lookup to miss.
	resolver := NewFactResolver(nil, domain.StarSchema{})
	facts, report := resolver.Resolve(records)

	require.Len(t, facts, 1)
	assert.Equal(t, domain.UnresolvedKey, facts[0].ProductKey)
	assert.Equal(t, domain.UnresolvedKey, facts[0].GeographyKey)
	assert.Equal(t, domain.UnresolvedKey, facts[0].DateKey)
	assert.Equal(t, 1, report.UnresolvedProduct)
	assert.Equal(t, 1, report.UnresolvedGeography)
	assert.Equal(t, 1, report.UnresolvedDate)

	// The customer lookup misses too, but customers degrade to the guest
	// key instead of the unresolved sentinel.
	assert.Equal(t, domain.GuestCustomerKey, facts[0].CustomerKey)
}

func TestFactResolver_RowCountInvariantUnderPermutation(t *testing.T) {
	dec := time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)
	var records []domain.CleanedRecord
	for i, stock := range []string{"A1", "B2", "C3", "D4"} {
		records = append(records, domain.CleanedRecord{
			Invoice: "536365", StockCode: stock, Country: "Germany",
			Quantity: int64(i + 1), UnitPrice: 2, TotalValue: float64(2 * (i + 1)),
			InvoiceDate: dec.AddDate(0, 0, i),
		})
	}

	schema := buildDims(t, records, 0)
	forward, _ := NewFactResolver(nil, schema).Resolve(records)

	reversed := make([]domain.CleanedRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	backward, _ := NewFactResolver(nil, schema).Resolve(reversed)

	require.Len(t, forward, len(records))
	require.Len(t, backward, len(records))
	for i := range forward {
		assert.Equal(t, forward[i], backward[len(backward)-1-i], "keys are order-independent")
	}
}
