package star

import (
	"log/slog"
	"time"

	"retailetl/pkg/contracts/domain"
)

// BuildDate derives the date dimension: a gap-free daily calendar spanning
// the cleaned set's invoice date range extended by bufferMonths on both
// sides. The buffer guarantees the fact resolver finds a date row for any
// in-range timestamp, and leaves headroom for re-loads with slightly wider
// data. Returns an empty table when the cleaned set is empty.
func BuildDate(logger *slog.Logger, records []domain.CleanedRecord, bufferMonths int) []domain.DateRow {
	if logger == nil {
		logger = slog.Default()
	}
	if len(records) == 0 {
		logger.Warn("no cleaned records, date dimension is empty")
		return nil
	}

	minDate := records[0].InvoiceDate
	maxDate := records[0].InvoiceDate
	for _, r := range records[1:] {
		if r.InvoiceDate.Before(minDate) {
			minDate = r.InvoiceDate
		}
		if r.InvoiceDate.After(maxDate) {
			maxDate = r.InvoiceDate
		}
	}

	start := midnight(minDate).AddDate(0, -bufferMonths, 0)
	end := midnight(maxDate).AddDate(0, bufferMonths, 0)

	var rows []domain.DateRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		rows = append(rows, dateRowFor(d))
	}

	logger.Info("built date dimension",
		slog.String("start", start.Format("2006-01-02")),
		slog.String("end", end.Format("2006-01-02")),
		slog.Int("days", len(rows)))
	return rows
}

// dateRowFor computes the calendar attributes for one day.
func dateRowFor(d time.Time) domain.DateRow {
	weekday := isoWeekday(d)
	return domain.DateRow{
		DateKey:       DateKey(d.Year(), int(d.Month()), d.Day()),
		Date:          d,
		Year:          d.Year(),
		Quarter:       (int(d.Month())-1)/3 + 1,
		Month:         int(d.Month()),
		MonthName:     d.Month().String(),
		DayOfYear:     d.YearDay(),
		DayOfMonth:    d.Day(),
		DayOfWeek:     weekday,
		DayName:       d.Weekday().String(),
		IsWeekend:     weekday >= 6,
		IsBusinessDay: weekday < 6,
	}
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO numbering (Monday=1,
// Sunday=7).
func isoWeekday(d time.Time) int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// midnight truncates a timestamp to the start of its calendar day in UTC.
// Invoice timestamps are wall-clock values without zone information, so the
// pipeline treats them uniformly as UTC.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
