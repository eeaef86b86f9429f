package star

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailetl/pkg/contracts/domain"
)

func purchase(customerID, invoice, country string, total float64, date time.Time) domain.CleanedRecord {
	return domain.CleanedRecord{
		Invoice: invoice, StockCode: "71053", CustomerID: customerID, Country: country,
		Quantity: 1, UnitPrice: total, TotalValue: total, InvoiceDate: date,
	}
}

func TestBuildCustomer_Registered(t *testing.T) {
	dec := time.Date(2010, 12, 1, 8, 0, 0, 0, time.UTC)
	jan := time.Date(2011, 1, 15, 10, 0, 0, 0, time.UTC)

	records := []domain.CleanedRecord{
		purchase("17850", "536365", "United Kingdom", 20.34, dec),
		purchase("17850", "536365", "United Kingdom", 11.10, dec), // same invoice
		purchase("17850", "540123", "United Kingdom", 5.00, jan),
		purchase("12583", "536370", "France", 7.50, dec),
	}

	rows := BuildCustomer(nil, records)
	require.Len(t, rows, 2)

	french := rows[0] // "12583" sorts before "17850"
	assert.Equal(t, "12583", french.CustomerID)
	assert.Equal(t, domain.CustomerTypeRegistered, french.CustomerType)
	assert.False(t, french.IsUK)

	uk := rows[1]
	assert.Equal(t, CustomerKey("17850"), uk.CustomerKey)
	assert.Equal(t, "United Kingdom", uk.Country)
	assert.True(t, uk.IsUK)
	assert.Equal(t, dec, uk.FirstPurchase)
	assert.Equal(t, jan, uk.LastPurchase)
	assert.Equal(t, int64(2), uk.TotalTransactions, "distinct invoices, not line items")
	assert.InDelta(t, 36.44, uk.TotalSpent, 1e-9)
}

func TestBuildCustomer_GuestRow(t *testing.T) {
	dec := time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)
	jan := time.Date(2011, 1, 5, 0, 0, 0, 0, time.UTC)

	records := []domain.CleanedRecord{
		purchase("", "536365", "United Kingdom", 10.00, jan),
		purchase("17850", "536366", "United Kingdom", 20.00, dec),
		purchase("", "536367", "France", 5.00, dec),
	}

	rows := BuildCustomer(nil, records)
	require.Len(t, rows, 2)

	guest := rows[1] // guest row is appended after registered customers
	assert.Equal(t, domain.GuestCustomerKey, guest.CustomerKey)
	assert.Equal(t, domain.CustomerTypeGuest, guest.CustomerType)
	assert.Empty(t, guest.CustomerID)
	assert.Equal(t, "Mixed", guest.Country)
	assert.Equal(t, dec, guest.FirstPurchase)
	assert.Equal(t, jan, guest.LastPurchase)
	assert.Equal(t, int64(2), guest.TotalTransactions)
	assert.InDelta(t, 15.00, guest.TotalSpent, 1e-9)
	assert.False(t, guest.IsUK)
}

func TestBuildCustomer_NoGuestRowWithoutGuests(t *testing.T) {
	records := []domain.CleanedRecord{
		purchase("17850", "536365", "United Kingdom", 20.34, time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)),
	}
	rows := BuildCustomer(nil, records)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.CustomerTypeRegistered, rows[0].CustomerType)
}
