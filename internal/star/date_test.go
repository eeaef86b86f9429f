package star

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailetl/pkg/contracts/domain"
)

func saleOn(date time.Time) domain.CleanedRecord {
	return domain.CleanedRecord{
		Invoice: "536365", StockCode: "71053", Country: "United Kingdom",
		Quantity: 1, UnitPrice: 1, TotalValue: 1, InvoiceDate: date,
	}
}

func TestBuildDate_SpansBufferedRange(t *testing.T) {
	records := []domain.CleanedRecord{
		saleOn(time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)),
		saleOn(time.Date(2011, 2, 15, 17, 0, 0, 0, time.UTC)),
	}

	rows := BuildDate(nil, records, 6)
	require.NotEmpty(t, rows)

	first := rows[0]
	last := rows[len(rows)-1]
	assert.Equal(t, time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, time.Date(2011, 8, 15, 0, 0, 0, 0, time.UTC), last.Date)

	// Gap-free: one row per calendar day across the whole range.
	days := int(last.Date.Sub(first.Date).Hours()/24) + 1
	assert.Len(t, rows, days)
	for i := 1; i < len(rows); i++ {
		assert.Equal(t, rows[i-1].Date.AddDate(0, 0, 1), rows[i].Date)
	}
}

func TestBuildDate_Attributes(t *testing.T) {
	// 2010-12-04 was a Saturday.
	rows := BuildDate(nil, []domain.CleanedRecord{saleOn(time.Date(2010, 12, 4, 12, 0, 0, 0, time.UTC))}, 0)
	require.Len(t, rows, 1)

	d := rows[0]
	assert.Equal(t, int64(20101204), d.DateKey)
	assert.Equal(t, 2010, d.Year)
	assert.Equal(t, 4, d.Quarter)
	assert.Equal(t, 12, d.Month)
	assert.Equal(t, "December", d.MonthName)
	assert.Equal(t, 338, d.DayOfYear)
	assert.Equal(t, 4, d.DayOfMonth)
	assert.Equal(t, 6, d.DayOfWeek)
	assert.Equal(t, "Saturday", d.DayName)
	assert.True(t, d.IsWeekend)
	assert.False(t, d.IsBusinessDay)
}

func TestBuildDate_SundayIsSeven(t *testing.T) {
	rows := BuildDate(nil, []domain.CleanedRecord{saleOn(time.Date(2010, 12, 5, 0, 0, 0, 0, time.UTC))}, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].DayOfWeek)
	assert.True(t, rows[0].IsWeekend)
}

func TestBuildDate_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildDate(nil, nil, 6))
}
