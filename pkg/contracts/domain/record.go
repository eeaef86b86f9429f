package domain

import (
	"time"
)

// RawRecord is a single spreadsheet row as loaded from the workbook.
// All values are untyped strings keyed by column header; Sheet carries the
// name of the worksheet the row came from.
type RawRecord struct {
	Fields map[string]string `json:"fields"`
	Sheet  string            `json:"sheet"`
}

// Get returns the named field and whether the column exists for this record.
func (r RawRecord) Get(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// NormalizedRecord is a raw record after type coercion. Coercion never fails a
// row: a field that could not be parsed is simply marked missing via its
// Has* flag.
type NormalizedRecord struct {
	Invoice        string    `json:"invoice"`
	StockCode      string    `json:"stock_code"`
	Description    string    `json:"description"`
	Quantity       int64     `json:"quantity"`
	HasQuantity    bool      `json:"has_quantity"`
	UnitPrice      float64   `json:"unit_price"`
	HasUnitPrice   bool      `json:"has_unit_price"`
	InvoiceDate    time.Time `json:"invoice_date"`
	HasInvoiceDate bool      `json:"has_invoice_date"`
	CustomerID     string    `json:"customer_id"` // empty when the source cell was blank or "nan"
	Country        string    `json:"country"`
	Sheet          string    `json:"sheet"`
}

// CleanedRecord is a fully validated sales line item. Every record that
// reaches this type has passed the quality filter: positive quantity and
// price, and a present, non-future invoice date. Records are immutable once
// the cleaning stage returns them.
type CleanedRecord struct {
	Invoice     string    `json:"invoice" db:"invoice"`
	StockCode   string    `json:"stock_code" db:"stock_code"`
	Description string    `json:"description" db:"description"`
	Quantity    int64     `json:"quantity" db:"quantity"`
	UnitPrice   float64   `json:"unit_price" db:"unit_price"`
	InvoiceDate time.Time `json:"invoice_date" db:"invoice_date"`
	CustomerID  string    `json:"customer_id" db:"customer_id"`
	Country     string    `json:"country" db:"country"`
	TotalValue  float64   `json:"total_value" db:"total_value"`
	Sheet       string    `json:"sheet" db:"sheet"`
}

// IsGuest reports whether the record has no registered customer.
func (r CleanedRecord) IsGuest() bool {
	return r.CustomerID == ""
}
