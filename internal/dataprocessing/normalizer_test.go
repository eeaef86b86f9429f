package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailetl/internal/config"
	"retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

func rawRecord(fields map[string]string) domain.RawRecord {
	return domain.RawRecord{Fields: fields, Sheet: "Year 2010-2011"}
}

func fullColumns() []string {
	return []string{
		"Invoice", "StockCode", "Description", "Quantity",
		"InvoiceDate", "Price", "Customer ID", "Country",
	}
}

func TestNormalizer_SchemaError(t *testing.T) {
	n := NewNormalizer(config.CleaningConfig{}, nil)

	_, err := n.Normalize([]string{"Invoice", "StockCode"}, nil)
	require.Error(t, err)

	schemaErr, ok := err.(*errors.SchemaError)
	require.True(t, ok, "expected *errors.SchemaError, got %T", err)
	assert.Contains(t, schemaErr.Missing, "Quantity")
	assert.Contains(t, schemaErr.Missing, "Country")
	assert.NotContains(t, schemaErr.Missing, "Invoice")
}

func TestNormalizer_Coercions(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.CleaningConfig
		fields map[string]string
		check  func(t *testing.T, rec domain.NormalizedRecord)
	}{
		{
			name: "valid row",
			fields: map[string]string{
				"Invoice": " 536365 ", "StockCode": "71053", "Description": "WHITE METAL LANTERN",
				"Quantity": "6", "InvoiceDate": "2010-12-01 08:26:00", "Price": "3.39",
				"Customer ID": "17850", "Country": "United Kingdom",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				assert.Equal(t, "536365", rec.Invoice)
				assert.True(t, rec.HasQuantity)
				assert.Equal(t, int64(6), rec.Quantity)
				assert.True(t, rec.HasUnitPrice)
				assert.Equal(t, 3.39, rec.UnitPrice)
				assert.True(t, rec.HasInvoiceDate)
				assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), rec.InvoiceDate)
				assert.Equal(t, "17850", rec.CustomerID)
			},
		},
		{
			name: "unparseable quantity becomes missing",
			fields: map[string]string{
				"Invoice": "1", "StockCode": "A", "Description": "", "Quantity": "six",
				"InvoiceDate": "2010-12-01", "Price": "1.00", "Customer ID": "", "Country": "France",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				assert.False(t, rec.HasQuantity)
				assert.True(t, rec.HasUnitPrice)
			},
		},
		{
			name: "fractional quantity becomes missing",
			fields: map[string]string{
				"Invoice": "1", "StockCode": "A", "Description": "", "Quantity": "6.5",
				"InvoiceDate": "2010-12-01", "Price": "1.00", "Customer ID": "", "Country": "France",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				assert.False(t, rec.HasQuantity)
			},
		},
		{
			name: "negative price becomes missing",
			fields: map[string]string{
				"Invoice": "1", "StockCode": "A", "Description": "", "Quantity": "1",
				"InvoiceDate": "2010-12-01", "Price": "-2.50", "Customer ID": "", "Country": "France",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				assert.False(t, rec.HasUnitPrice)
			},
		},
		{
			name: "unparseable date becomes missing",
			fields: map[string]string{
				"Invoice": "1", "StockCode": "A", "Description": "", "Quantity": "1",
				"InvoiceDate": "not a date", "Price": "1.00", "Customer ID": "", "Country": "France",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				assert.False(t, rec.HasInvoiceDate)
			},
		},
		{
			name: "textual null customer id becomes missing",
			fields: map[string]string{
				"Invoice": "1", "StockCode": "A", "Description": "", "Quantity": "1",
				"InvoiceDate": "2010-12-01", "Price": "1.00", "Customer ID": "nan", "Country": "France",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				assert.Empty(t, rec.CustomerID)
			},
		},
		{
			name: "currency stripping",
			cfg:  config.CleaningConfig{StripCurrency: true},
			fields: map[string]string{
				"Invoice": "1", "StockCode": "A", "Description": "", "Quantity": "1",
				"InvoiceDate": "2010-12-01", "Price": "£3,39", "Customer ID": "", "Country": "United Kingdom",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				require.True(t, rec.HasUnitPrice)
				assert.Equal(t, 3.39, rec.UnitPrice)
			},
		},
		{
			name: "day-first date parsing",
			cfg:  config.CleaningConfig{DayFirst: true},
			fields: map[string]string{
				"Invoice": "1", "StockCode": "A", "Description": "", "Quantity": "1",
				"InvoiceDate": "01/12/2010 08:26", "Price": "1.00", "Customer ID": "", "Country": "France",
			},
			check: func(t *testing.T, rec domain.NormalizedRecord) {
				require.True(t, rec.HasInvoiceDate)
				assert.Equal(t, time.December, rec.InvoiceDate.Month())
				assert.Equal(t, 1, rec.InvoiceDate.Day())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(tt.cfg, nil)
			out, err := n.Normalize(fullColumns(), []domain.RawRecord{rawRecord(tt.fields)})
			require.NoError(t, err)
			require.Len(t, out, 1)
			tt.check(t, out[0])
			assert.Equal(t, "Year 2010-2011", out[0].Sheet)
		})
	}
}

func TestNormalizer_NeverFailsPerRow(t *testing.T) {
	n := NewNormalizer(config.CleaningConfig{}, nil)

	records := []domain.RawRecord{
		rawRecord(map[string]string{"Invoice": "1"}),
		rawRecord(map[string]string{}),
	}
	out, err := n.Normalize(fullColumns(), records)
	require.NoError(t, err)
	assert.Len(t, out, len(records))
}
