package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"retailetl/pkg/contracts/domain"
)

func TestQualityFilter(t *testing.T) {
	now := time.Date(2011, 6, 1, 12, 0, 0, 0, time.UTC)
	valid := normalized("536365", "71053", 6, 3.39, now.AddDate(0, -3, 0))

	tests := []struct {
		name   string
		mutate func(r *domain.NormalizedRecord)
		keep   bool
	}{
		{"valid sale", func(r *domain.NormalizedRecord) {}, true},
		{"zero quantity", func(r *domain.NormalizedRecord) { r.Quantity = 0 }, false},
		{"negative quantity", func(r *domain.NormalizedRecord) { r.Quantity = -4 }, false},
		{"missing quantity", func(r *domain.NormalizedRecord) { r.HasQuantity = false }, false},
		{"zero price", func(r *domain.NormalizedRecord) { r.UnitPrice = 0 }, false},
		{"missing price", func(r *domain.NormalizedRecord) { r.HasUnitPrice = false }, false},
		{"missing date", func(r *domain.NormalizedRecord) { r.HasInvoiceDate = false }, false},
		{"future date", func(r *domain.NormalizedRecord) { r.InvoiceDate = now.AddDate(0, 0, 1) }, false},
		{"date exactly now", func(r *domain.NormalizedRecord) { r.InvoiceDate = now }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			f := NewQualityFilter(now, nil)
			assert.Equal(t, tt.keep, f.Keep(rec))
		})
	}
}

func TestQualityFilter_Apply(t *testing.T) {
	now := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)
	bad := normalized("2", "B", -1, 2.0, now.AddDate(0, -1, 0))
	good := normalized("1", "A", 2, 5.0, now.AddDate(0, -1, 0))
	good.CustomerID = "12345"

	out := NewQualityFilter(now, nil).Apply([]domain.NormalizedRecord{bad, good})

	assert.Len(t, out, 1)
	assert.Equal(t, "1", out[0].Invoice)
	assert.Equal(t, int64(2), out[0].Quantity)
	assert.Equal(t, 5.0, out[0].UnitPrice)
	assert.Equal(t, "12345", out[0].CustomerID)
	assert.Zero(t, out[0].TotalValue, "total value is computed by the enricher, not the filter")
}
