// Package loader reads the raw sales export from an Excel workbook. Every
// cell is kept as a string; typing is the normalizer's job.
package loader

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"retailetl/pkg/contracts/domain"
)

// RawTable is the loaded batch: the union of all column headers across the
// selected sheets plus one RawRecord per data row. Records from a sheet that
// lacks a column simply have no entry for it.
type RawTable struct {
	Columns []string
	Records []domain.RawRecord
}

// Loader reads .xlsx workbooks.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a workbook loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the workbook at path. With an empty sheet selector every sheet
// is read and the columns are unioned by header name; otherwise only the
// named sheet (or zero-based index, when the selector is numeric) is read.
func (l *Loader) Load(path, sheet string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets, err := selectSheets(f, sheet)
	if err != nil {
		return nil, err
	}

	table := &RawTable{}
	seen := make(map[string]bool)

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		if len(rows) == 0 {
			l.logger.Warn("sheet is empty", slog.String("sheet", name))
			continue
		}

		headers := make([]string, len(rows[0]))
		for i, h := range rows[0] {
			headers[i] = strings.TrimSpace(h)
		}
		for _, h := range headers {
			if h != "" && !seen[h] {
				seen[h] = true
				table.Columns = append(table.Columns, h)
			}
		}

		count := 0
		for _, row := range rows[1:] {
			if isBlankRow(row) {
				continue
			}
			fields := make(map[string]string, len(headers))
			for i, h := range headers {
				if h == "" || i >= len(row) {
					continue
				}
				fields[h] = row[i]
			}
			table.Records = append(table.Records, domain.RawRecord{Fields: fields, Sheet: name})
			count++
		}

		l.logger.Info("loaded sheet",
			slog.String("sheet", name),
			slog.Int("records", count))
	}

	l.logger.Info("loaded raw records",
		slog.Int("sheets", len(sheets)),
		slog.Int("records", len(table.Records)),
		slog.Int("columns", len(table.Columns)))
	return table, nil
}

// selectSheets resolves the sheet selector against the workbook.
func selectSheets(f *excelize.File, sheet string) ([]string, error) {
	all := f.GetSheetList()
	if sheet == "" {
		return all, nil
	}

	if idx, err := strconv.Atoi(sheet); err == nil {
		if idx < 0 || idx >= len(all) {
			return nil, fmt.Errorf("sheet index %d out of range, workbook has %d sheets", idx, len(all))
		}
		return []string{all[idx]}, nil
	}

	for _, name := range all {
		if name == sheet {
			return []string{name}, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found in workbook", sheet)
}

// isBlankRow reports whether every cell in the row is empty or whitespace.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
