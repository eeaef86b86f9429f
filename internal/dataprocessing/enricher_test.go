package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"retailetl/pkg/contracts/domain"
)

func cleanedRecord(country, description string, qty int64, price float64) domain.CleanedRecord {
	return domain.CleanedRecord{
		Invoice: "536365", StockCode: "71053",
		Description: description, Country: country,
		Quantity: qty, UnitPrice: price,
		InvoiceDate: time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCanonicalCountry(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"UK", "United Kingdom"},
		{"England", "United Kingdom"},
		{"Great Britain", "United Kingdom"},
		{"EIRE", "Ireland"},
		{"USA", "United States"},
		{"U.S.A.", "United States"},
		{"Germany", "Germany"},
		{"Curaçao", "Curaçao"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalCountry(tt.in))
		})
	}
}

func TestEnrich(t *testing.T) {
	records := []domain.CleanedRecord{
		cleanedRecord("UK", "WHITE METAL LANTERN", 6, 3.39),
		cleanedRecord("France", "nan", 2, 1.10),
		cleanedRecord("EIRE", "", 1, 4.50),
	}

	out := Enrich(nil, records)

	assert.Equal(t, "United Kingdom", out[0].Country)
	assert.Equal(t, "WHITE METAL LANTERN", out[0].Description)
	assert.InDelta(t, 20.34, out[0].TotalValue, 1e-9)

	assert.Equal(t, UnknownProduct, out[1].Description)
	assert.Equal(t, UnknownProduct, out[2].Description)
	assert.Equal(t, "Ireland", out[2].Country)

	// Input slice is untouched.
	assert.Equal(t, "UK", records[0].Country)
	assert.Zero(t, records[0].TotalValue)
}
